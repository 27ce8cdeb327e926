package cli

import (
	"context"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/brewxml"
	"github.com/unkn0wn-root/brewxml/codec"
	"github.com/unkn0wn-root/brewxml/doccache"
	"github.com/unkn0wn-root/brewxml/genstore"
	asynchook "github.com/unkn0wn-root/brewxml/hooks/async"
	"github.com/unkn0wn-root/brewxml/promhooks"
	pr "github.com/unkn0wn-root/brewxml/provider"
	bcprov "github.com/unkn0wn-root/brewxml/provider/bigcache"
	rprov "github.com/unkn0wn-root/brewxml/provider/redis"
	rsprov "github.com/unkn0wn-root/brewxml/provider/ristretto"
	"github.com/unkn0wn-root/brewxml/sloghooks"
)

// app holds everything a command needs. Build with newApp, release with
// close.
type app struct {
	cfg     Config
	log     brewxml.Logger
	codec   *brewxml.Codec
	cache   *doccache.ImportCache // nil when cache.provider=none
	exports *doccache.ExportCache // nil when cache.provider=none
	stdout  io.Writer

	registry *prometheus.Registry
	closers  []func()
}

func newApp(ctx context.Context, cfg Config, stdout, stderr io.Writer) (*app, error) {
	a := &app{cfg: cfg, stdout: stdout, registry: prometheus.NewRegistry()}

	logger, flush := newLogger(cfg.Log, stderr)
	a.log = logger
	a.closers = append(a.closers, flush)

	hooks, err := a.newHooks(stderr)
	if err != nil {
		a.close()
		return nil, err
	}

	a.codec = brewxml.New(brewxml.Options{
		Logger:          logger,
		Hooks:           hooks,
		MaxDocumentSize: cfg.Decode.MaxDocumentSize,
		Indent:          cfg.Encode.Indent,
	})

	if err := a.openCache(ctx, hooks); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// newHooks reports events to stderr through slog, off the decode path, and
// counts them in the app registry.
func (a *app) newHooks(stderr io.Writer) (brewxml.Hooks, error) {
	sl := stdslog.New(stdslog.NewTextHandler(stderr, &stdslog.HandlerOptions{Level: slogLevel(a.cfg.Log.Level)}))
	async := asynchook.New(sloghooks.New(sl, sloghooks.Options{FallbackEvery: 1}), 1, 1024)
	a.closers = append(a.closers, async.Close)

	counters, err := promhooks.New(a.registry)
	if err != nil {
		return nil, err
	}
	return brewxml.MultiHooks{async, counters}, nil
}

func (a *app) openCache(ctx context.Context, hooks brewxml.Hooks) error {
	p, client, err := newProvider(ctx, a.cfg.Cache)
	if err != nil || p == nil {
		return err
	}
	if client != nil {
		a.closers = append(a.closers, func() { _ = client.Close() })
	}
	// Both caches borrow p; the app closes it once.
	a.closers = append(a.closers, func() { _ = p.Close(context.Background()) })
	shared := borrowed{p}

	z, err := codec.NewZstd[[]brewxml.Recipe](codec.Msgpack[[]brewxml.Recipe]{}, uint64(a.cfg.Cache.MaxEntry))
	if err != nil {
		return err
	}
	a.closers = append(a.closers, z.Close)

	ic, err := doccache.NewImportCache(doccache.Options{
		Namespace: a.cfg.Cache.Namespace,
		Provider:  shared,
		Codec:     a.codec,
		Payload:   codec.Limit[[]brewxml.Recipe]{Inner: z, MaxDecode: a.cfg.Cache.MaxEntry},
		Logger:    a.log,
		Hooks:     hooks,
		TTL:       a.cfg.Cache.TTL,
	})
	if err != nil {
		return err
	}
	a.cache = ic
	a.closers = append(a.closers, func() { _ = ic.Close(context.Background()) })

	var gens genstore.GenStore
	if client != nil {
		gens = genstore.NewRedisGenStore(client, "brewxml:"+a.cfg.Cache.Namespace, a.cfg.Cache.GenRetention)
	}
	ec, err := doccache.NewExportCache(doccache.Options{
		Namespace:    a.cfg.Cache.Namespace,
		Provider:     shared,
		Codec:        a.codec,
		GenStore:     gens,
		GenRetention: a.cfg.Cache.GenRetention,
		Logger:       a.log,
		Hooks:        hooks,
		TTL:          a.cfg.Cache.TTL,
	})
	if err != nil {
		return err
	}
	a.exports = ec
	a.closers = append(a.closers, func() { _ = ec.Close(context.Background()) })
	return nil
}

// borrowed lends a provider to a cache without handing over Close.
type borrowed struct{ pr.Provider }

func (borrowed) Close(context.Context) error { return nil }

// newProvider builds the configured store. For redis it also returns the
// client so generations can share the connection pool.
func newProvider(ctx context.Context, cfg CacheConfig) (pr.Provider, goredis.UniversalClient, error) {
	switch cfg.Provider {
	case "ristretto":
		p, err := rsprov.New(rsprov.Config{
			NumCounters: 100_000,
			MaxBytes:    cfg.Ristretto.MaxBytes,
		})
		return p, nil, err
	case "bigcache":
		p, err := bcprov.New(ctx, bcprov.Config{
			LifeWindow:   lo.Ternary(cfg.TTL > 0, cfg.TTL, 10*time.Minute),
			MaxEntrySize: 64 << 10,
		})
		return p, nil, err
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		p, err := rprov.New(rprov.Config{Client: client, Prefix: "brewxml:"})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return p, client, nil
	default:
		return nil, nil, nil
	}
}

// decode goes through the import cache when one is configured.
func (a *app) decode(ctx context.Context, doc []byte) ([]brewxml.Recipe, error) {
	if a.cache != nil {
		return a.cache.Decode(ctx, doc)
	}
	return a.codec.Decode(doc)
}

// close releases resources in reverse order and writes the metrics textfile
// if one is configured.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	if a.cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, a.registry); err != nil {
			a.log.Warn("metrics textfile write failed", brewxml.Fields{"path": a.cfg.MetricsTextfile, "err": err})
		}
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
