// Package config handles planetgen configuration loading and management.
package config

import "github.com/Faultbox/planetgen/internal/planet"

// Config holds all settings.
type Config struct {
	Planet   PlanetConfig   `yaml:"planet"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlanetConfig holds generator inputs.
type PlanetConfig struct {
	Subdivisions int     `yaml:"subdivisions"` // Icosphere recursion depth
	Plates       int     `yaml:"plates"`       // Number of tectonic plates
	Seed         uint64  `yaml:"seed"`         // RNG seed for classification and growth
	Radius       float64 `yaml:"radius"`       // World-space planet radius
}

// Params converts the planet section to generator parameters.
func (p PlanetConfig) Params() planet.Params {
	return planet.Params{
		Subdivisions: p.Subdivisions,
		Plates:       p.Plates,
		Seed:         p.Seed,
		Radius:       p.Radius,
	}
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
}

// ServerConfig holds mesh server settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config describing the reference planet.
func Default() *Config {
	p := planet.DefaultParams()
	return &Config{
		Planet: PlanetConfig{
			Subdivisions: p.Subdivisions,
			Plates:       p.Plates,
			Seed:         p.Seed,
			Radius:       p.Radius,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Wireframe:  false,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
