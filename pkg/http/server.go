package http

import (
	"context"

	http_router "github.com/lintang-b-s/metronav/pkg/http/router"
	"github.com/lintang-b-s/metronav/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/metronav/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. runs the REST api until ctx is done or the listener fails.
func (s *Server) Use(
	ctx context.Context,
	routingService controllers.RoutingService,
) error {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}
	rateLimit := http_router.RateLimit{
		Enabled: viper.GetBool("USE_RATE_LIMIT"),
		RPS:     viper.GetFloat64("RATE_LIMIT_RPS"),
		Burst:   viper.GetInt("RATE_LIMIT_BURST"),
	}

	api := http_router.NewAPI(s.Log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gCtx, config, rateLimit, routingService)
	})
	return g.Wait()
}
