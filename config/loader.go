package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/theoremus-urban-solutions/odp-amsterdam/normalize"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = 16181
	defaultTimeoutMS      = 15000
	defaultGarageURL      = "https://api.data.amsterdam.nl/dcatd/datasets/9ORkef6T-aU29g/purls/1"
	defaultParkingSpotURL = "https://api.data.amsterdam.nl/v1/parkeervakken/parkeervakken"
)

// Config is the global application configuration
var Config AppConfig

// searchPaths are tried in order by LoadAppConfig.
var searchPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the configuration for the live Amsterdam feeds.
func Default() AppConfig {
	rules := normalize.DefaultRules()
	return AppConfig{
		Server: ServerConfig{Port: defaultPort},
		Client: ClientConfig{
			GarageURL:      defaultGarageURL,
			ParkingSpotURL: defaultParkingSpotURL,
			TimeoutMS:      defaultTimeoutMS,
		},
		Filters: FiltersConfig{
			Exclude:     rules.Exclude,
			NameNoise:   rules.NameNoise,
			Unknown:     rules.Unknown,
			Corrections: rules.Corrections,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadAppConfig loads config.yml from the first search path that exists,
// applies environment overrides and stores the result in Config.
// Defaults are used when no file is found.
func LoadAppConfig() error {
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			if err != nil {
				return err
			}
			Config = cfg
			return nil
		}
	}

	cfg := Default()
	if err := finish(&cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Load reads, overrides and validates a configuration file.
// Keys absent from the file keep their default values.
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := finish(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func finish(cfg *AppConfig) error {
	if err := applyEnv(cfg); err != nil {
		return err
	}
	return Validate(cfg)
}

// Validate checks struct tags on the whole configuration.
func Validate(cfg *AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv loads .env when present and applies ODP_* overrides.
func applyEnv(cfg *AppConfig) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if v, ok := os.LookupEnv("ODP_GARAGE_URL"); ok {
		cfg.Client.GarageURL = v
	}
	if v, ok := os.LookupEnv("ODP_PARKING_SPOT_URL"); ok {
		cfg.Client.ParkingSpotURL = v
	}
	if v, ok := os.LookupEnv("ODP_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("ODP_LOG_FORMAT"); ok {
		cfg.Logging.Format = v
	}
	if err := envInt("ODP_TIMEOUT_MS", &cfg.Client.TimeoutMS); err != nil {
		return err
	}
	return envInt("ODP_SERVER_PORT", &cfg.Server.Port)
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}
