package autoplay

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/matchday/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging sends structured logs to both stdout and a file. If logFile is
// empty, a timestamped filename is generated. The returned closer releases
// the file.
func SetupLogging(logFile, level string) (io.Closer, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "autoplay_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.InitWith(io.MultiWriter(os.Stdout, file), "text"); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return file, nil
}

// ShowHelp prints usage information for the autoplay tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Matchday Autoplay
=================

Plays careers end to end against a running matchday service and checks
that every league table stays consistent.

Usage:
  go run ./cmd/autoplay [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -careers int
        Number of careers to create (default 8)
  -matches int
        Matches played per career (default 20)
  -workers int
        Number of concurrent workers (default CPU cores)
  -timeout duration
        HTTP request timeout (default 30s)
  -sandbox
        Create sandbox careers that can draw on the bank (default true)
  -skip-save
        Skip the save and reload check
  -log string
        Log file for run output (default: autoplay_TIMESTAMP.log)
  -verbose
        Log every match
  -help
        Show this help message

Examples:
  # Play with default settings
  go run ./cmd/autoplay

  # Play two full seasons for 32 careers
  go run ./cmd/autoplay -careers 32 -matches 36 -workers 16

  # Watch every result
  go run ./cmd/autoplay -verbose -careers 1
`)
}
