package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/metronav/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/metronav/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/metronav/pkg/http/server"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type RateLimit struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler. full middleware chain in front of the api routes.
func (api *API) Handler(rateLimit RateLimit, routingService controllers.RoutingService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)
	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")
	routingRoutes := controllers.New(routingService, api.log)
	routingRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels}
	if rateLimit.Enabled {
		mwChain = append(mwChain, Limit(rateLimit.RPS, rateLimit.Burst))
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			Metronav API
//	@version		1.0
//	@description	Fastest foot and metro routes across the city.

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	rateLimit RateLimit,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(rateLimit, routingService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
