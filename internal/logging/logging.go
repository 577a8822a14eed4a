package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// Setup configures the global slog logger.
// Console logs go to stderr so stdout stays free for JSON output.
// If logOutputDir is non-empty, logs are also written to a timestamped file in that directory
func Setup(levelStr string, logOutputDir string) error {
	_, err := setup(os.Stderr, levelStr, logOutputDir)
	return err
}

// setup installs the default logger and returns the log file path, if any.
func setup(console io.Writer, levelStr string, logOutputDir string) (string, error) {
	level := parseLogLevel(levelStr)

	consoleHandler := tint.NewHandler(console, &tint.Options{Level: level, TimeFormat: time.TimeOnly})

	if logOutputDir != "" {
		logDir := os.ExpandEnv(logOutputDir)

		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create log output directory: %w", err)
		}

		timestamp := time.Now().Format("20060102_150405")
		logFileName := fmt.Sprintf("lnkparse_%s.log", timestamp)
		logFilePath := filepath.Join(logDir, logFileName)

		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return "", fmt.Errorf("failed to create log file: %w", err)
		}

		fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})

		slog.SetDefault(slog.New(
			slogmulti.Fanout(consoleHandler, fileHandler),
		))

		fmt.Fprintf(console, "Logging to file: %s\n", logFilePath)
		return logFilePath, nil
	}

	slog.SetDefault(slog.New(consoleHandler))
	return "", nil
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "trace", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
