package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/clacklabs/clack/pkg/utils/logging"
)

// Logger holds CLI flags for diagnostic logging. All log output goes to
// stderr so it never mixes with rendered command output.
type Logger struct {
	level string
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error); debug enables cache/dispatch diagnostics",
			Category:    "Logging",
			Value:       "warn",
			Sources:     cli.EnvVars("CLACK_LOG_LEVEL"),
			Destination: &x.level,
		},
	}
}

// Configure installs the process logger.
func (x *Logger) Configure() (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(x.level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", x.level))
	}

	return logging.Configure(os.Stderr, level), nil
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(slog.String("level", x.level))
}
