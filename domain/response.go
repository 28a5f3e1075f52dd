package domain

// AppHTTPCode is the business status carried in every response envelope.
type AppHTTPCode int

const (
	CodeSuccess      AppHTTPCode = 200
	CodeNeedLogin    AppHTTPCode = 1
	CodeParamInvalid AppHTTPCode = 501
	CodeServerError  AppHTTPCode = 503
)

var codeMessages = map[AppHTTPCode]string{
	CodeSuccess:      "success",
	CodeNeedLogin:    "need login",
	CodeParamInvalid: "invalid parameter",
	CodeServerError:  "server error",
}

// Message returns the default message for the code.
func (c AppHTTPCode) Message() string {
	return codeMessages[c]
}

// ResponseEnvelope is the body of every API response.
type ResponseEnvelope struct {
	Code    AppHTTPCode `json:"code"`
	Message string      `json:"message"`
	Data    any         `json:"data"`
}

func OkResult(data any) *ResponseEnvelope {
	return &ResponseEnvelope{Code: CodeSuccess, Message: CodeSuccess.Message(), Data: data}
}

func ErrorResult(code AppHTTPCode) *ResponseEnvelope {
	return &ResponseEnvelope{Code: code, Message: code.Message()}
}
