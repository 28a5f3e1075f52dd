package rest

import (
	"context"
	"net/http"
	"time"

	"article-search/domain"
	authmw "article-search/internal/auth/middleware"
	"article-search/logger"
	appOtel "article-search/utils/otel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ArticleSearcher interface {
	Execute(ctx context.Context, params *domain.SearchParams, user *domain.CurrentUser) (*domain.ResponseEnvelope, error)
}

type HistoryService interface {
	Load(ctx context.Context, user *domain.CurrentUser) ([]*domain.SearchHistory, error)
	Delete(ctx context.Context, user *domain.CurrentUser, id uuid.UUID) error
}

type AssociateSearcher interface {
	Search(ctx context.Context, params *domain.AssociateParams) ([]*domain.AssociateWord, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler contains the HTTP handlers of the article search service.
type Handler struct {
	search    ArticleSearcher
	history   HistoryService
	associate AssociateSearcher
	health    HealthChecker
	now       func() time.Time
}

func NewHandler(search ArticleSearcher, history HistoryService, associate AssociateSearcher, health HealthChecker) *Handler {
	return &Handler{
		search:    search,
		history:   history,
		associate: associate,
		health:    health,
		now:       time.Now,
	}
}

func (h *Handler) SearchArticles(c echo.Context) error {
	start := time.Now()
	ctx := logger.WithOperation(c.Request().Context(), "search_articles")

	var req SearchArticlesRequest
	if err := c.Bind(&req); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "invalid search request", "error", err)
		appOtel.RecordSearch(ctx, appOtel.OutcomeInvalidParam, time.Since(start))
		return c.JSON(http.StatusBadRequest, domain.ErrorResult(domain.CodeParamInvalid))
	}
	ctx = logger.WithSearchWords(ctx, req.SearchWords)

	user := authmw.UserFromContext(ctx)
	envelope, err := h.search.Execute(ctx, req.toDomain(h.now()), user)
	if err != nil {
		appOtel.RecordSearch(ctx, appOtel.OutcomeError, time.Since(start))
		return respondError(ctx, c, err)
	}

	if envelope.Code != domain.CodeSuccess {
		appOtel.RecordSearch(ctx, appOtel.OutcomeInvalidParam, time.Since(start))
		return c.JSON(statusFor(envelope.Code), envelope)
	}

	appOtel.RecordSearch(ctx, appOtel.OutcomeSuccess, time.Since(start))
	logger.FromContext(ctx).InfoContext(ctx, "search ok",
		"page_index", req.PageIndex,
		"page_size", req.PageSize,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c.JSON(http.StatusOK, envelope)
}

func (h *Handler) LoadHistory(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "load_history")

	histories, err := h.history.Load(ctx, authmw.UserFromContext(ctx))
	if err != nil {
		return respondError(ctx, c, err)
	}
	return c.JSON(http.StatusOK, domain.OkResult(histories))
}

func (h *Handler) DeleteHistory(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "delete_history")

	var req DeleteHistoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(ctx, c, domain.ErrInvalidParameter)
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return respondError(ctx, c, domain.ErrInvalidParameter)
	}

	if err := h.history.Delete(ctx, authmw.UserFromContext(ctx), id); err != nil {
		return respondError(ctx, c, err)
	}
	return c.JSON(http.StatusOK, domain.OkResult(nil))
}

func (h *Handler) SearchAssociateWords(c echo.Context) error {
	ctx := logger.WithOperation(c.Request().Context(), "associate_words")

	var req AssociateWordsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(ctx, c, domain.ErrInvalidParameter)
	}

	words, err := h.associate.Search(ctx, req.toDomain())
	if err != nil {
		return respondError(ctx, c, err)
	}
	return c.JSON(http.StatusOK, domain.OkResult(words))
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "search engine unreachable"})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
