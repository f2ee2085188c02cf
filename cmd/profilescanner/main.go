package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ProfileScanner/internal/app"
	"ProfileScanner/internal/config"
	"ProfileScanner/internal/logging"
)

func main() {
	logFormat := flag.String("log-format", "text", "log output format: text or json")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: profilescanner [flags] <job> [task]\n\njobs: %s\n\nflags:\n",
			strings.Join(app.Jobs, ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, *logFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	job := flag.Arg(0)
	if err := application.RunJob(ctx, job, flag.Args()[1:]); err != nil {
		logger.Error("job failed", "job", job, "error", err)
		stop()
		application.Close()
		os.Exit(1)
	}
}
