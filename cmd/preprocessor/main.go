package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/metronav/pkg/logger"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/lintang-b-s/metronav/pkg/osmparser"
	"github.com/lintang-b-s/metronav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	osmPath   = flag.String("osm", "", "openstreetmap .osm.pbf extract, overrides STREET_OSM_PATH")
	cachePath = flag.String("out", "", "street network cache file, overrides STREET_CACHE_PATH")
)

// parses the osm extract once and writes the street network cache used by cmd/engine.
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("reading config", zap.Error(err))
	}
	in := viper.GetString("STREET_OSM_PATH")
	if *osmPath != "" {
		in = *osmPath
	}
	out := viper.GetString("STREET_CACHE_PATH")
	if *cachePath != "" {
		out = *cachePath
	}

	sn, err := osmparser.NewOsmParser().Parse(context.Background(), in, logger)
	if err != nil {
		logger.Fatal("parsing osm extract", zap.Error(err))
	}
	if err := network.WriteStreetNetwork(out, sn); err != nil {
		logger.Fatal("writing street network cache", zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. %d nodes, %d edges written to %s",
		sn.NumberOfNodes(), sn.NumberOfEdges(), out)
}
