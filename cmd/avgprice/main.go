package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"avgprice/internal/app"
	"avgprice/internal/config"
	"avgprice/internal/logging"
)

type result struct {
	Op      string  `json:"op"`
	Average float64 `json:"average"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "avgprice:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("avgprice", flag.ContinueOnError)
	op := fs.String("op", "local", "operation: local, cache or remote")
	configPath := fs.String("config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	location := fs.String("location", "", "override the local price database location (\":memory:\" for ephemeral)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *location != "" {
		cfg.Location = *location
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}()

	avg, err := compute(ctx, a, *op)
	if err != nil {
		log.Error().Err(err).Str("op", *op).Msg("average failed")
		return err
	}
	log.Info().Str("op", *op).Float64("average", avg).Msg("average computed")

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result{Op: *op, Average: avg})
}

func compute(ctx context.Context, a *app.App, op string) (float64, error) {
	switch op {
	case "local":
		return a.Service.Average(ctx)
	case "cache":
		return a.Service.AverageAndCache(ctx)
	case "remote":
		return a.Service.AverageFromRemote(ctx)
	default:
		return 0, errors.New("unknown op " + op + " (want local, cache or remote)")
	}
}
