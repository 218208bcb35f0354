package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/balance"
	"github.com/ledgerline-dev/ledgerline/internal/migration"
)

// New builds the HTTP router with all routes registered.
func New(migrations *migration.Service, balances *balance.Service, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	a := &API{migrations: migrations, balances: balances, log: log}

	v1 := r.Group("/api/v1")
	v1.POST("/migrate", a.MigrateCSV)
	v1.GET("/users/:user_id/balance", a.UserBalance)

	r.GET("/health", a.Health)

	return r
}

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
