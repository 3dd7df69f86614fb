package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"avgprice/internal/cache"
	"avgprice/internal/config"
	"avgprice/internal/httpx"
	"avgprice/internal/pricing"
	"avgprice/internal/provider"
	"avgprice/internal/provider/remote"
	"avgprice/internal/provider/sqlite"
)

// App holds the collaborators built from a Config. The caller owns it and must call Close.
// Prices is Local as the service sees it; after Synced it serializes reads.
type App struct {
	Service *pricing.Service
	Local   *sqlite.Source
	Prices  provider.Source
	Remote  *remote.Client
	Cache   cache.Store

	closers []func() error
}

// Build wires the local source, remote client and cache store into a pricing.Service.
// Redis is dialed eagerly so a bad address fails here rather than on the first request.
func Build(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Local: sqlite.New(cfg.Location)}
	a.Prices = a.Local

	hc := httpx.New(time.Duration(cfg.Remote.TimeoutSec) * time.Second)
	opts := []remote.ClientOption{
		remote.WithEndpoint(cfg.Remote.Endpoint),
		remote.WithHTTPClient(hc),
		remote.WithLogger(log.With().Str("component", "remote").Logger()),
	}
	if cfg.Remote.StrictPrices {
		opts = append(opts, remote.WithStrictPrices())
	}
	rc, err := remote.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("remote client: %w", err)
	}
	a.Remote = rc

	switch cfg.Cache.Backend {
	case "", "memory":
		a.Cache = cache.NewMap()
	case "redis":
		cli, err := cache.DialRedis(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, cli.Close)
		a.Cache = cache.NewRedis(cli, log.With().Str("component", "cache").Logger())
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	a.Service = pricing.New(a.Cache, a.Prices, a.Remote)
	log.Debug().
		Str("location", a.Local.Location()).
		Str("endpoint", a.Remote.Endpoint()).
		Str("cache", cfg.Cache.Backend).
		Msg("app wired")
	return a, nil
}

// Synced guards the cache and serializes local reads, then rebuilds the service
// around them. Servers call this before handling requests concurrently.
func (a *App) Synced() {
	a.Cache = cache.NewSynced(a.Cache)
	a.Prices = provider.NewSynced(a.Prices)
	a.Service = pricing.New(a.Cache, a.Prices, a.Remote)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
