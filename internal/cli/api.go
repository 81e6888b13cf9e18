package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/app"
	"github.com/Shivanand-hulikatti/event-ease/internal/config"
	"github.com/Shivanand-hulikatti/event-ease/internal/handler"
	"github.com/Shivanand-hulikatti/event-ease/internal/service"
	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the bookings/contacts demo REST API",
	Long: `Serves /api/health, /api/bookings, /api/contacts and /api/events.
By default the data lives in process memory and is lost on restart; set
http.store to sqlite or postgres to back it with a database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serveAPI(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

// serveAPI runs the demo API until ctx is cancelled, then shuts down
// gracefully.
func serveAPI(ctx context.Context, cfg *config.Config) error {
	logger := newLogger()

	storeCfg := cfg.Store
	storeCfg.Driver = cfg.HTTP.Store
	store, err := app.OpenStore(ctx, storeCfg, nil)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Printf("demo API store: %s", storeCfg.Driver)

	if err := app.SeedCatalog(ctx, store, cfg.Catalog, logger); err != nil {
		return err
	}

	// A zero rate disables limiting.
	var limiter *handler.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = handler.NewRateLimiter(handler.LimiterConfig{
			RPS:     cfg.RateLimit.RPS,
			Burst:   cfg.RateLimit.Burst,
			IdleTTL: cfg.RateLimit.IdleTTL,
		})
		sweepStop := make(chan struct{})
		defer close(sweepStop)
		go limiter.Run(sweepStop)
	}

	h := handler.NewAPIHandler(service.NewBookingService(store), logger, nil)
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.NewRouter(h, handler.RouterConfig{
			Logger:    logger,
			Limiter:   limiter,
			StaticDir: cfg.HTTP.StaticDir,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Printf("server listening on http://localhost:%d", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Println("server stopped")
	return nil
}
