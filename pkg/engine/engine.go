package engine

import (
	"context"
	"errors"
	"os"

	"github.com/lintang-b-s/metronav/pkg/costfunction"
	"github.com/lintang-b-s/metronav/pkg/engine/routing"
	"github.com/lintang-b-s/metronav/pkg/fusion"
	"github.com/lintang-b-s/metronav/pkg/geo"
	"github.com/lintang-b-s/metronav/pkg/network"
	"github.com/lintang-b-s/metronav/pkg/osmparser"
	"github.com/lintang-b-s/metronav/pkg/transitparser"
	"github.com/lintang-b-s/metronav/pkg/util"
	"go.uber.org/zap"
)

type Config struct {
	StreetOsmPath   string
	StreetCachePath string
	StationsCsvPath string
	AccessesCsvPath string
	NearestWorkers  int
	CityBounds      geo.BoundingBox
}

// Engine. owns the long-lived city graph and the path engine built on it. built once at startup.
type Engine struct {
	pathEngine *routing.PathEngine
}

func (e *Engine) GetPathEngine() *routing.PathEngine {
	return e.pathEngine
}

// NewEngine. loads both networks, fuses them and builds the path engine. any error is fatal.
func NewEngine(ctx context.Context, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting multi-modal routing engine...")

	street, err := LoadStreetNetwork(ctx, cfg.StreetOsmPath, cfg.StreetCachePath, logger)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "loading street network")
	}

	transit, err := LoadTransitNetwork(cfg.StationsCsvPath, cfg.AccessesCsvPath, logger)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "loading transit network")
	}

	return NewEngineFromNetworks(ctx, street, transit, cfg, logger)
}

func NewEngineFromNetworks(ctx context.Context, street *network.StreetNetwork, transit *network.TransitNetwork,
	cfg Config, logger *zap.Logger) (*Engine, error) {
	costFunction := costfunction.NewTimeCostFunction()
	fuser := fusion.NewFuser(costFunction, cfg.NearestWorkers, logger)
	graph, streetIndex, err := fuser.Fuse(ctx, street, transit)
	if err != nil {
		return nil, err
	}
	return &Engine{
		pathEngine: routing.NewPathEngine(graph, streetIndex, costFunction, cfg.CityBounds, logger),
	}, nil
}

// LoadStreetNetwork. reads the street cache if present, otherwise parses the osm extract and writes the cache.
func LoadStreetNetwork(ctx context.Context, osmPath, cachePath string, logger *zap.Logger) (*network.StreetNetwork, error) {
	if cachePath != "" {
		sn, err := network.ReadStreetNetwork(cachePath)
		if err == nil {
			logger.Info("Street network read from cache", zap.String("cachePath", cachePath),
				zap.Int("nodes", sn.NumberOfNodes()), zap.Int("edges", sn.NumberOfEdges()))
			return sn, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("street network cache unreadable, parsing osm extract", zap.Error(err))
		}
	}

	logger.Info("Parsing openstreetmap extract", zap.String("osmPath", osmPath))
	sn, err := osmparser.NewOsmParser().Parse(ctx, osmPath, logger)
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if err := network.WriteStreetNetwork(cachePath, sn); err != nil {
			logger.Warn("could not write street network cache", zap.String("cachePath", cachePath), zap.Error(err))
		}
	}
	return sn, nil
}

func LoadTransitNetwork(stationsPath, accessesPath string, logger *zap.Logger) (*network.TransitNetwork, error) {
	stations, err := transitparser.ParseStationsFile(stationsPath)
	if err != nil {
		return nil, err
	}
	accesses, err := transitparser.ParseAccessesFile(accessesPath)
	if err != nil {
		return nil, err
	}
	tn := network.BuildTransitNetwork(stations, accesses)
	logger.Info("Transit network loaded", zap.Int("stations", len(tn.Stations)),
		zap.Int("accesses", len(tn.Accesses)), zap.Int("edges", len(tn.Edges)),
		zap.Strings("lines", tn.Lines()))
	return tn, nil
}
