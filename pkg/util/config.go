package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("STREET_OSM_PATH", "./data/barcelona.osm.pbf")
	viper.SetDefault("STREET_CACHE_PATH", "./data/street.graph")
	viper.SetDefault("STATIONS_CSV_PATH", "./data/estacions.csv")
	viper.SetDefault("ACCESSES_CSV_PATH", "./data/accessos.csv")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	viper.SetDefault("ROUTE_CACHE_SIZE", 4096)
	viper.SetDefault("ROUTE_CACHE_TTL", "24h")
	viper.SetDefault("NEAREST_WORKERS", 4)

	// barcelona
	viper.SetDefault("CITY_MIN_LAT", 41.30)
	viper.SetDefault("CITY_MAX_LAT", 41.48)
	viper.SetDefault("CITY_MIN_LON", 2.05)
	viper.SetDefault("CITY_MAX_LON", 2.25)
}

// ReadConfig. reads ./data/config.yaml on top of the defaults. a missing file is not an error.
func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
