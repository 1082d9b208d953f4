package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field naming the subsystem that wrote an entry.
const ComponentKey = "cmp"

// Component derives a logger for name from the global logger.
func Component(name string) zerolog.Logger {
	return Sub(log.Logger, name)
}

// Sub tags parent with name. Services that receive a logger in their
// constructor use it so tests can pass zerolog.Nop.
func Sub(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str(ComponentKey, name).Logger()
}
