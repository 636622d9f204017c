package config

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/Faultbox/planetgen/pkg/icosphere"
	"github.com/Faultbox/planetgen/pkg/packed"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	invalid := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	p := c.Planet
	if p.Subdivisions < 0 || p.Subdivisions > icosphere.MaxSubdivisions {
		invalid("planet.subdivisions %d not in 0..%d", p.Subdivisions, icosphere.MaxSubdivisions)
	} else if maxPlates := icosphere.TriangleCount(p.Subdivisions); p.Plates < 1 || p.Plates > maxPlates {
		invalid("planet.plates %d not in 1..%d", p.Plates, maxPlates)
	}

	_, hi := packed.Limits()
	maxRadius := math.Min(hi[0], math.Min(hi[1], hi[2]))
	if !(p.Radius > 0) || p.Radius > maxRadius {
		invalid("planet.radius %g not in (0, %g]", p.Radius, maxRadius)
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		invalid("graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	}

	if c.Server.Listen == "" {
		invalid("server.listen must not be empty")
	}

	if !validLevels[c.Logging.Level] {
		invalid("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}

	return err
}
