package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/metronav/pkg/engine"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/http"
	"github.com/lintang-b-s/metronav/pkg/http/usecases"
	"github.com/lintang-b-s/metronav/pkg/logger"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	osmPath      = flag.String("osm", "", "openstreetmap .osm.pbf extract, overrides STREET_OSM_PATH")
	stationsPath = flag.String("stations", "", "stations csv, overrides STATIONS_CSV_PATH")
	accessesPath = flag.String("accesses", "", "accesses csv, overrides ACCESSES_CSV_PATH")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("reading config", zap.Error(err))
	}
	overrideFromFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := engine.Config{
		StreetOsmPath:   viper.GetString("STREET_OSM_PATH"),
		StreetCachePath: viper.GetString("STREET_CACHE_PATH"),
		StationsCsvPath: viper.GetString("STATIONS_CSV_PATH"),
		AccessesCsvPath: viper.GetString("ACCESSES_CSV_PATH"),
		NearestWorkers:  viper.GetInt("NEAREST_WORKERS"),
		CityBounds: geo.NewBoundingBox(viper.GetFloat64("CITY_MIN_LAT"), viper.GetFloat64("CITY_MIN_LON"),
			viper.GetFloat64("CITY_MAX_LAT"), viper.GetFloat64("CITY_MAX_LON")),
	}
	routingEngine, err := engine.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("building city graph", zap.Error(err))
	}

	routingService := usecases.NewRoutingService(logger, routingEngine.GetPathEngine(),
		viper.GetInt("ROUTE_CACHE_SIZE"), viper.GetDuration("ROUTE_CACHE_TTL"))

	api := http.NewServer(logger)
	if err := api.Use(ctx, routingService); err != nil && ctx.Err() == nil {
		logger.Error("api stopped", zap.Error(err))
	}

	logger.Info("Metronav Routing Engine Server Stopped")
}

func overrideFromFlags() {
	if *osmPath != "" {
		viper.Set("STREET_OSM_PATH", *osmPath)
	}
	if *stationsPath != "" {
		viper.Set("STATIONS_CSV_PATH", *stationsPath)
	}
	if *accessesPath != "" {
		viper.Set("ACCESSES_CSV_PATH", *accessesPath)
	}
}
