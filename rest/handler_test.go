package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"article-search/domain"
	authmw "article-search/internal/auth/middleware"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	gotParams *domain.SearchParams
	gotUser   *domain.CurrentUser
	envelope  *domain.ResponseEnvelope
	err       error
}

func (f *fakeSearcher) Execute(ctx context.Context, params *domain.SearchParams, user *domain.CurrentUser) (*domain.ResponseEnvelope, error) {
	f.gotParams = params
	f.gotUser = user
	return f.envelope, f.err
}

type fakeHistory struct {
	histories []*domain.SearchHistory
	deletedID uuid.UUID
	err       error
}

func (f *fakeHistory) Load(ctx context.Context, user *domain.CurrentUser) ([]*domain.SearchHistory, error) {
	if user == nil {
		return nil, domain.ErrNeedLogin
	}
	return f.histories, f.err
}

func (f *fakeHistory) Delete(ctx context.Context, user *domain.CurrentUser, id uuid.UUID) error {
	f.deletedID = id
	return f.err
}

type fakeAssociate struct {
	gotParams *domain.AssociateParams
	words     []*domain.AssociateWord
	err       error
}

func (f *fakeAssociate) Search(ctx context.Context, params *domain.AssociateParams) ([]*domain.AssociateWord, error) {
	f.gotParams = params
	return f.words, f.err
}

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Ping(ctx context.Context) error {
	return f.err
}

// staticValidator accepts exactly one token.
type staticValidator struct{}

func (staticValidator) Validate(token string) (*domain.CurrentUser, error) {
	if token == "good-token" {
		return &domain.CurrentUser{ID: 42}, nil
	}
	return nil, errors.New("invalid token")
}

type testEnv struct {
	echo      *echo.Echo
	search    *fakeSearcher
	history   *fakeHistory
	associate *fakeAssociate
	health    *fakeHealth
	now       time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		echo:      echo.New(),
		search:    &fakeSearcher{envelope: domain.OkResult([]domain.ResultItem{})},
		history:   &fakeHistory{},
		associate: &fakeAssociate{},
		health:    &fakeHealth{},
		now:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	h := NewHandler(env.search, env.history, env.associate, env.health)
	h.now = func() time.Time { return env.now }
	RegisterRoutes(env.echo, h, authmw.NewAuthMiddleware(staticValidator{}))
	return env
}

type envelopeBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (env *testEnv) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelopeBody) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	var parsed envelopeBody
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestSearchArticles_Success(t *testing.T) {
	env := newTestEnv()
	item, err := domain.DecodeResultItem([]byte(`{"id":5,"title":"Go","h_title":"<font>Go</font>"}`))
	require.NoError(t, err)
	env.search.envelope = domain.OkResult([]domain.ResultItem{item})

	rec, body := env.do(t, http.MethodPost, "/api/v1/article/search/search",
		`{"searchWords":"go","pageIndex":0,"pageSize":10,"minPublishTime":1700000000000}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, body.Code)
	assert.Equal(t, "success", body.Message)
	assert.JSONEq(t, `[{"id":5,"title":"Go","h_title":"<font>Go</font>"}]`, string(body.Data))

	require.NotNil(t, env.search.gotParams)
	assert.Equal(t, "go", env.search.gotParams.SearchWords)
	assert.Equal(t, 10, env.search.gotParams.PageSize)
	assert.Equal(t, int64(1700000000000), env.search.gotParams.MinPublishTime.UnixMilli())
	assert.Nil(t, env.search.gotUser)
}

func TestSearchArticles_MissingMinPublishTimeUsesNow(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodPost, "/api/v1/article/search/search", `{"searchWords":"go","pageSize":10}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, env.now, env.search.gotParams.MinPublishTime)
}

func TestSearchArticles_OptionalAuth(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantUser *domain.CurrentUser
	}{
		{name: "valid token", token: "good-token", wantUser: &domain.CurrentUser{ID: 42}},
		{name: "invalid token is anonymous", token: "bad-token", wantUser: nil},
		{name: "no token", token: "", wantUser: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()

			rec, _ := env.do(t, http.MethodPost, "/api/v1/article/search/search", `{"searchWords":"go"}`, tt.token)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUser, env.search.gotUser)
		})
	}
}

func TestSearchArticles_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		envelope   *domain.ResponseEnvelope
		err        error
		wantStatus int
		wantCode   int
	}{
		{
			name:       "malformed body",
			body:       `{"searchWords":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   501,
		},
		{
			name:       "bad timestamp",
			body:       `{"searchWords":"go","minPublishTime":"yesterday"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   501,
		},
		{
			name:       "blank search words",
			body:       `{"searchWords":""}`,
			envelope:   domain.ErrorResult(domain.CodeParamInvalid),
			wantStatus: http.StatusBadRequest,
			wantCode:   501,
		},
		{
			name:       "engine failure",
			body:       `{"searchWords":"go"}`,
			err:        &domain.SearchEngineError{Op: "SearchArticles", Err: "connection refused"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   503,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.search.envelope = tt.envelope
			env.search.err = tt.err

			rec, body := env.do(t, http.MethodPost, "/api/v1/article/search/search", tt.body, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestLoadHistory(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		env := newTestEnv()

		rec, body := env.do(t, http.MethodPost, "/api/v1/history/load", `{}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 1, body.Code)
		assert.Equal(t, "need login", body.Message)
	})

	t.Run("returns the user's history", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.history.histories = []*domain.SearchHistory{{ID: id, UserID: 42, Keyword: "golang", CreatedAt: env.now}}

		rec, body := env.do(t, http.MethodPost, "/api/v1/history/load", `{}`, "good-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		var histories []domain.SearchHistory
		require.NoError(t, json.Unmarshal(body.Data, &histories))
		require.Len(t, histories, 1)
		assert.Equal(t, id, histories[0].ID)
		assert.Equal(t, "golang", histories[0].Keyword)
	})
}

func TestDeleteHistory(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   int
	}{
		{name: "deleted", body: `{"id":"` + id.String() + `"}`, wantStatus: http.StatusOK, wantCode: 200},
		{name: "malformed id", body: `{"id":"not-a-uuid"}`, wantStatus: http.StatusBadRequest, wantCode: 501},
		{name: "not owned", body: `{"id":"` + id.String() + `"}`, serviceErr: domain.ErrInvalidParameter, wantStatus: http.StatusBadRequest, wantCode: 501},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.history.err = tt.serviceErr

			rec, body := env.do(t, http.MethodPost, "/api/v1/history/del", tt.body, "good-token")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestSearchAssociateWords(t *testing.T) {
	env := newTestEnv()
	env.associate.words = []*domain.AssociateWord{{ID: uuid.New(), AssociateWords: "golang"}}

	rec, body := env.do(t, http.MethodPost, "/api/v1/associate/search", `{"searchWords":"go","pageSize":5}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &domain.AssociateParams{SearchWords: "go", PageSize: 5}, env.associate.gotParams)

	var words []domain.AssociateWord
	require.NoError(t, json.Unmarshal(body.Data, &words))
	require.Len(t, words, 1)
	assert.Equal(t, "golang", words[0].AssociateWords)
}

func TestHealth(t *testing.T) {
	env := newTestEnv()

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	env.health.err = errors.New("no route to host")
	rec = httptest.NewRecorder()
	env.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "no route to host")
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "epoch millis", input: `1700000000000`, want: time.UnixMilli(1700000000000)},
		{name: "epoch millis as string", input: `"1700000000000"`, want: time.UnixMilli(1700000000000)},
		{name: "rfc3339", input: `"2024-03-01T10:00:00Z"`, want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "fractional", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v, want %v", ts.Time, tt.want)
		})
	}
}
