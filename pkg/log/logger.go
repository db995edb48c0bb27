package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nitedns/smartdns/pkg/config"
)

// NewLogger creates a slog.Logger from the logging options. An empty output
// discards log records.
func NewLogger(opts config.LoggingOptions) (*slog.Logger, error) {
	logOptions := &slog.HandlerOptions{}

	level := strings.TrimSpace(opts.Level)
	level = strings.ToLower(level)

	switch level {
	case "debug":
		logOptions.Level = slog.LevelDebug
	case "info", "":
		logOptions.Level = slog.LevelInfo
	case "warn":
		logOptions.Level = slog.LevelWarn
	case "error":
		logOptions.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var writer io.Writer

	output := strings.TrimSpace(opts.Output)
	output = strings.ToLower(output)

	switch output {
	case "":
		writer = io.Discard
	case "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		file, err := os.OpenFile(opts.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writer = file
	}

	handler := strings.TrimSpace(opts.Handler)
	handler = strings.ToLower(handler)

	var logHandler slog.Handler

	switch handler {
	case "text", "":
		logHandler = slog.NewTextHandler(writer, logOptions)
	case "json":
		logHandler = slog.NewJSONHandler(writer, logOptions)
	default:
		return nil, fmt.Errorf("handler '%s' is not supported", handler)
	}

	return slog.New(logHandler), nil
}
