package config

import "github.com/theoremus-urban-solutions/odp-amsterdam/normalize"

// ServerConfig contains HTTP API configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// ClientConfig contains open-data platform endpoints and transport settings
type ClientConfig struct {
	GarageURL         string  `yaml:"garageURL" validate:"required,url"`
	ParkingSpotURL    string  `yaml:"parkingSpotURL" validate:"required,url"`
	TimeoutMS         int     `yaml:"timeoutMS" validate:"gte=0"`
	UserAgent         string  `yaml:"userAgent"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// FiltersConfig contains the token lists used to clean feed values
type FiltersConfig struct {
	Exclude     []string `yaml:"exclude"`
	NameNoise   []string `yaml:"nameNoise"`
	Unknown     []string `yaml:"unknown"`
	Corrections []string `yaml:"corrections"`
}

// Rules returns the filters as normalization rules.
func (f FiltersConfig) Rules() normalize.Rules {
	return normalize.Rules{
		Exclude:     append([]string(nil), f.Exclude...),
		NameNoise:   append([]string(nil), f.NameNoise...),
		Unknown:     append([]string(nil), f.Unknown...),
		Corrections: append([]string(nil), f.Corrections...),
	}
}

// IsZero reports whether no filter list is set.
func (f FiltersConfig) IsZero() bool {
	return len(f.Exclude) == 0 && len(f.NameNoise) == 0 && len(f.Unknown) == 0 && len(f.Corrections) == 0
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Client  ClientConfig  `yaml:"client" validate:"required"`
	Filters FiltersConfig `yaml:"filters"`
	Logging LoggingConfig `yaml:"logging"`
}
