package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Korolev91/estatehub/api"
	"github.com/Korolev91/estatehub/config"
	"github.com/Korolev91/estatehub/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Agents       *api.AgentHandler
	Properties   *api.PropertyHandler
	Availability *api.AvailabilityHandler
	Bookings     *api.BookingHandler
	Commissions  *api.CommissionHandler
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, h Handlers) error {
	metrics.Register()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	h.Agents.Register(v1.Group("/agents"))
	h.Properties.Register(v1.Group("/properties"))
	h.Availability.Register(v1.Group("/properties"))
	h.Bookings.Register(v1.Group("/bookings"))
	h.Commissions.Register(v1.Group("/commissions"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info().Str("address", cfg.HTTP.Address).Msg("http server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.IncHTTP(c.FullPath())
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
