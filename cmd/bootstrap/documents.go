package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"tourdesk/internal/document/cache"
	"tourdesk/internal/document/raster"
	"tourdesk/internal/document/render"
	"tourdesk/internal/pkg/config"
	"tourdesk/internal/pkg/sharetoken"

	"go.uber.org/fx"
)

// DocumentModule wires the render pipeline: headless browser converter,
// template renderer, PDF rasterizer, share tokens and the artifact cache
// with its periodic janitor.
var DocumentModule = fx.Module("documents",
	fx.Provide(
		NewShareTokenService,
		NewPDFConverter,
		NewRenderer,
		NewRasterConverter,
		NewCacheStore,
	),
	fx.Invoke(StartCacheJanitor),
)

func NewShareTokenService(cfg config.Config) *sharetoken.Service {
	return sharetoken.NewService(
		cfg.Share.SecretKey,
		cfg.Share.TTLDays,
		sharetoken.Policy(cfg.Share.Policy),
	)
}

func NewPDFConverter(lc fx.Lifecycle, cfg config.Config) (render.PDFConverter, error) {
	converter, err := render.NewRodConverter(cfg.Render.BrowserBin)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return converter.Close()
		},
	})

	return converter, nil
}

func NewRenderer(converter render.PDFConverter, cfg config.Config, logger *slog.Logger) (*render.Renderer, error) {
	return render.NewRenderer(converter, render.Options{
		ThaiFontPaths: cfg.Render.ThaiFontPaths,
		MaxConcurrent: cfg.Render.MaxConcurrentRenders,
	}, logger)
}

func NewRasterConverter(logger *slog.Logger) *raster.Converter {
	return raster.NewConverter(logger)
}

func NewCacheStore(cfg config.Config, logger *slog.Logger) (*cache.Store, error) {
	return cache.NewStore(cfg.Cache.Dir, logger)
}

// StartCacheJanitor sweeps expired artifacts hourly. The cache is
// content-addressed, so entries for mutated bookings are never reused;
// the sweep only reclaims disk.
func StartCacheJanitor(lc fx.Lifecycle, store *cache.Store, cfg config.Config, logger *slog.Logger) {
	maxAge := time.Duration(cfg.Cache.MaxAgeHours) * time.Hour
	if maxAge <= 0 {
		return
	}

	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						removed, err := store.Cleanup(maxAge)
						if err != nil {
							logger.Warn("cache cleanup failed", "error", err)
							continue
						}
						if removed > 0 {
							logger.Info("cache cleanup finished", "removed", removed)
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			close(done)
			return nil
		},
	})
}
