package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/matchday/internal/autoplay"
)

// Default configuration constants.
const (
	defaultCareers    = 8
	defaultMatches    = 20
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		careers  = flag.Int("careers", defaultCareers, "Number of careers to create")
		matches  = flag.Int("matches", defaultMatches, "Matches played per career")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		sandbox  = flag.Bool("sandbox", true, "Create sandbox careers")
		skipSave = flag.Bool("skip-save", false, "Skip the save and reload check")
		logFile  = flag.String("log", "", "Log file for run output (default: autoplay_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every match")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		autoplay.ShowHelp()
		return 0
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	closer, err := autoplay.SetupLogging(*logFile, level)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	config := &autoplay.Config{
		BaseURL:  *baseURL,
		Careers:  *careers,
		Matches:  *matches,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Sandbox:  *sandbox,
		SkipSave: *skipSave,
		Verbose:  *verbose,
	}

	if _, err := autoplay.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Autoplay failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
