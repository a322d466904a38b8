package grass

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _grassConfig{}
)

// _grassConfig is a "hidden" struct; use Config() to read it.
type _grassConfig struct {
	ParticlesLimit int
	Galaxies       int
	// UseGalaxies mirrors original_source/demo/main.cpp's
	// env::get("GRASS_GALAXIES").has_value(): presence, not value, selects
	// the galaxies initial condition over figure-8 (spec.md §6).
	UseGalaxies  bool
	G            float64
	TanThreshold float64
}

// Config returns the process-wide simulation configuration, loaded once from
// the file named by GRASS_CONFIG (falling back to built-in defaults if the
// variable is unset) and from any GRASS_-prefixed environment variable that
// overrides a key in it.
func Config() _grassConfig {
	if cfgLoaded {
		return config
	}

	viper.SetDefault("particles_limit", 20000)
	viper.SetDefault("galaxies", 2)
	viper.SetDefault("g", 1.0)
	viper.SetDefault("tan_threshold", float64(DefaultTanAngleThreshold))

	viper.SetEnvPrefix("GRASS")
	viper.AutomaticEnv()

	if confPath := os.Getenv("GRASS_CONFIG"); confPath != "" {
		viper.SetConfigFile(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("grass: reading %s: %w", confPath, err))
		}
	}

	_, useGalaxies := os.LookupEnv("GRASS_GALAXIES")
	config = _grassConfig{
		ParticlesLimit: clampParticlesLimit(viper.GetInt("particles_limit")),
		Galaxies:       viper.GetInt("galaxies"),
		UseGalaxies:    useGalaxies,
		G:              viper.GetFloat64("g"),
		TanThreshold:   viper.GetFloat64("tan_threshold"),
	}
	cfgLoaded = true
	return config
}

// clampParticlesLimit enforces spec.md §6's cap on GRASS_PARTICLES_LIMIT:
// clamped to [1, 10000] regardless of what the config file or environment
// requests.
func clampParticlesLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10000 {
		return 10000
	}
	return n
}
