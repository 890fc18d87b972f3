package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/payperplay/mcstatus/internal/models"
	"github.com/payperplay/mcstatus/internal/service"
	"github.com/payperplay/mcstatus/pkg/config"
	"github.com/payperplay/mcstatus/pkg/logger"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// stdout carries only the JSON result.
	logger.SetDefault(logger.NewLogger(logger.WARN, stderr, false))
	cfg := config.Load()

	fs := flag.NewFlagSet("mcstatus", flag.ContinueOnError)
	fs.SetOutput(stderr)
	edition := fs.String("edition", string(models.EditionJava), "server edition: java or bedrock")
	query := fs.Bool("query", cfg.DefaultQuery, "use the query protocol (java only)")
	timeout := fs.Float64("timeout", cfg.DefaultTimeout, "lookup timeout in seconds")
	iconFile := fs.String("icon", "", "also fetch the server icon and write it to this PNG file")
	verbose := fs.Bool("v", false, "log API requests to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: mcstatus [flags] <address>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	address := fs.Arg(0)

	level := logger.WARN
	if *verbose {
		level = logger.DEBUG
	}
	logger.SetDefault(logger.NewLogger(level, stderr, false))

	client := mcstatus.NewClient(
		mcstatus.WithBaseURL(cfg.APIBaseURL),
		mcstatus.WithUserAgent(cfg.UserAgent),
	)
	svc := service.NewStatusService(client, cfg, nil)
	ctx := context.Background()
	opts := service.LookupOptions{Query: query, Timeout: *timeout}

	var (
		view interface{}
		err  error
	)
	switch ed, _ := models.ParseEdition(*edition); ed {
	case models.EditionJava:
		view, err = svc.JavaStatus(ctx, address, opts)
	case models.EditionBedrock:
		view, err = svc.BedrockStatus(ctx, address, opts)
	default:
		fmt.Fprintf(stderr, "unknown edition %q\n", *edition)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "lookup failed: %v\n", err)
		return exitCode(err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		fmt.Fprintf(stderr, "failed to write output: %v\n", err)
		return 1
	}

	if *iconFile != "" {
		data, err := svc.IconPNG(ctx, address, *timeout)
		if err != nil {
			fmt.Fprintf(stderr, "icon fetch failed: %v\n", err)
			return exitCode(err)
		}
		if err := os.WriteFile(*iconFile, data, 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write icon: %v\n", err)
			return 1
		}
	}

	return 0
}

// exitCode is 2 for usage errors and 1 for everything else
func exitCode(err error) int {
	if errors.Is(err, mcstatus.ErrInvalidArgument) {
		return 2
	}
	return 1
}
