package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jengzang/solarmap-backend-go/internal/api"
	"github.com/jengzang/solarmap-backend-go/internal/config"
	"github.com/jengzang/solarmap-backend-go/internal/dataset"
	"github.com/jengzang/solarmap-backend-go/internal/logging"
	"github.com/jengzang/solarmap-backend-go/internal/middleware"
	"github.com/jengzang/solarmap-backend-go/internal/service"
)

func main() {
	_ = godotenv.Load(".env")

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// 加载数据
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := dataset.Load(ctx, dataset.Options{
		TabularPath:  cfg.Data.TabularPath,
		GeoPath:      cfg.Data.GeoPath,
		Sheet:        cfg.Data.Sheet,
		Table:        cfg.Data.Table,
		IDColumn:     cfg.Data.IDColumn,
		DefaultZoom:  cfg.Map.DefaultZoom,
		SelectedZoom: cfg.Map.SelectedZoom,
		MapStyle:     cfg.Map.Style,
	})
	if err != nil {
		logging.Fatal().Err(err).
			Str("tabular", cfg.Data.TabularPath).
			Str("geo", cfg.Data.GeoPath).
			Msg("Failed to load dataset")
	}

	// 初始化路由
	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		defer limiter.Stop()
	}
	router := api.SetupRouter(cfg, service.NewDashboardService(base), limiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Int("parcels", base.Len()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
