// Package obs holds the process-wide structured logger.
package obs

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is usable before InitLogger runs so packages and tests can log freely.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogger replaces Logger using the configured level. Unknown levels
// fall back to info. Pretty switches to human-readable console output.
func InitLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			Level(lvl).With().Timestamp().Logger()
		return
	}
	Logger = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
