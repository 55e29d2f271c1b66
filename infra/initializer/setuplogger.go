package initializer

import (
	"log/slog"
	"os"

	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/charmbracelet/log"
)

// setupLogger builds the process-wide slog.Logger backed by charmbracelet's
// handler, configured from the LOG_* environment settings.
func setupLogger(cfg *config.Log) *slog.Logger {
	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}
