package model

import "github.com/pkg/errors"

// ErrConfiguration marks a grid that cannot be built from the requested geometry.
// The simulation cannot start without a well-defined grid.
var ErrConfiguration = errors.New("configuration error")

// IsConfigurationError reports whether err was caused by invalid grid geometry
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
