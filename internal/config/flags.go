package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagSubdivisions = flag.Int("subdivisions", -1, "Icosphere subdivision depth")
	flagPlates       = flag.Int("plates", 0, "Number of tectonic plates")
	flagSeed         = flag.String("seed", "", "RNG seed (unsigned integer)")
	flagWindowed     = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen   = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWireframe    = flag.Bool("wireframe", false, "Draw triangle edges only")
	flagWidth        = flag.Int("width", 0, "Window width")
	flagHeight       = flag.Int("height", 0, "Window height")
	flagListen       = flag.String("listen", "", "Mesh server listen address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSubdivisions >= 0 {
		cfg.Planet.Subdivisions = *flagSubdivisions
	}
	if *flagPlates > 0 {
		cfg.Planet.Plates = *flagPlates
	}
	if *flagSeed != "" {
		seed, err := parseSeed(*flagSeed)
		if err != nil {
			return err
		}
		cfg.Planet.Seed = seed
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWireframe {
		cfg.Graphics.Wireframe = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagListen != "" {
		cfg.Server.Listen = *flagListen
	}
	return nil
}
