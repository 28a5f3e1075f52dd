package rest

import (
	"context"
	"errors"
	"net/http"

	"article-search/domain"
	"article-search/logger"

	"github.com/labstack/echo/v4"
)

func statusFor(code domain.AppHTTPCode) int {
	switch code {
	case domain.CodeSuccess:
		return http.StatusOK
	case domain.CodeParamInvalid:
		return http.StatusBadRequest
	case domain.CodeNeedLogin:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps err onto an envelope. Engine and storage details are
// logged and never sent to the client.
func respondError(ctx context.Context, c echo.Context, err error) error {
	var code domain.AppHTTPCode
	switch {
	case errors.Is(err, domain.ErrInvalidParameter):
		code = domain.CodeParamInvalid
	case errors.Is(err, domain.ErrNeedLogin):
		code = domain.CodeNeedLogin
	default:
		code = domain.CodeServerError
		logger.FromContext(ctx).ErrorContext(ctx, "request failed", "error", err)
	}
	return c.JSON(statusFor(code), domain.ErrorResult(code))
}
