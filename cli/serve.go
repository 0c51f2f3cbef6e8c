package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/wudi/noticepdf/cache"
	"github.com/wudi/noticepdf/config"
	"github.com/wudi/noticepdf/observability"
	"github.com/wudi/noticepdf/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve notice rendering over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides [server] addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	log := newLogger(cmd, cfg)
	b, err := newBuilder(cfg.Render, log)
	if err != nil {
		return err
	}
	store, err := openCache(cmd.Context(), cfg.Cache, log)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Builder:       b,
		Cache:         store,
		CacheTTL:      cfg.Cache.TTL(),
		MaxInputBytes: cfg.Server.MaxInputBytes,
		RateLimit:     cfg.Server.RateLimit,
		RateBurst:     cfg.Server.RateBurst,
		Logger:        log,
	})
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("cache close failed", observability.Error("error", err))
		}
	}
	return server.RunWithGracefulShutdown(cmd.Context(), httpServer, log, cleanup, cfg.Server.ShutdownTimeout())
}

// openCache picks Redis when an address is configured, else the in-process
// store.
func openCache(ctx context.Context, cfg config.CacheConfig, log observability.Logger) (cache.Store, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.MaxEntries), nil
	}
	r := cache.NewRedis(cfg.RedisAddr, "", cfg.RedisDB)
	if err := r.Ping(ctx); err != nil {
		r.Close()
		return nil, err
	}
	log.Info("using redis cache", observability.String("addr", cfg.RedisAddr))
	return r, nil
}
