package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/app"
	"github.com/metamingle/server/internal/config"
	"github.com/metamingle/server/internal/handler"
	"github.com/metamingle/server/internal/middleware"
)

// NewEngine assembles the gin engine: middleware chain, health endpoint,
// and the authenticated /v1 group all registrars attach to.
func NewEngine(cfg *config.Config, appCtx *app.AppContext, registrars ...Registrar) *gin.Engine {
	if cfg.HTTP.Mode != "" {
		gin.SetMode(cfg.HTTP.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(appCtx.Logger),
		gin.Recovery(),
	)

	engine.GET("/healthz", handler.Health(appCtx))

	v1 := engine.Group("/v1", middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer))
	for _, r := range registrars {
		r.Register(v1)
	}

	return engine
}

// StartHTTPServer boots the engine on the configured address.
func StartHTTPServer(cfg *config.Config, engine *gin.Engine) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	if err := engine.Run(addr); err != nil {
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	}
	return nil
}
