package rest

import (
	authmw "article-search/internal/auth/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h *Handler, auth *authmw.AuthMiddleware) {
	e.GET("/health", h.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/article/search/search", h.SearchArticles, auth.OptionalAuth())
	v1.POST("/history/load", h.LoadHistory, auth.RequireAuth())
	v1.POST("/history/del", h.DeleteHistory, auth.RequireAuth())
	v1.POST("/associate/search", h.SearchAssociateWords)
}
