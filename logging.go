package ptnetwork

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// InitLogging builds the root logger. Unknown levels fall back to info.
func InitLogging(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
