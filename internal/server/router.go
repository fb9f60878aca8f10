package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/afaqulislam/todo-full-stack-web-application/internal/config"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/endpoints"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/rewrite"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/server/handler"
	"github.com/afaqulislam/todo-full-stack-web-application/internal/server/middleware"
)

// NewRouter fails when the /api/v1 rewrite cannot reach a backend, since
// production traffic depends on it.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	rules := rewrite.Rules{rewrite.APIRule(cfg.ProxyTarget)}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("proxy target %q: %w", cfg.ProxyTarget, err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	table := endpoints.FromConfig(cfg)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.WebOrigin))

	api := router.Group("/api")
	{
		api.GET("/healthz", handler.Health)
		api.GET("/endpoints", handler.Endpoints(table))
		api.Any("/v1/*path", handler.Proxy(rules))
	}

	if cfg.StaticDir != "" {
		router.NoRoute(handler.SPA(cfg.StaticDir))
	}

	return router, nil
}
