// Package ui wires the configured store, image cache and metrics into the
// calendar TUI.
package ui

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/imagecache"
	"tableflip.dev/daybook/pkg/metrics"
	"tableflip.dev/daybook/pkg/store"
	"tableflip.dev/daybook/pkg/tui/app"
	"tableflip.dev/daybook/pkg/window"
)

type UI struct {
	Config      *config.Config
	Persistence store.Persistence
	Logger      *zap.Logger
}

// Do runs the TUI until the user quits.
func (u *UI) Do(ctx context.Context) error {
	if u.Config == nil {
		return errors.New("ui: config required")
	}
	if u.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}
	log := u.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		recorder window.Recorder
		opts     = u.Config.ImageOptions()
	)
	if addr := u.Config.MetricsAddr; addr != "" {
		collector := metrics.NewCollector("daybook")
		if _, err := collector.Serve(ctx, addr, log.Named("metrics")); err != nil {
			return err
		}
		recorder = collector
		opts.Recorder = collector
	}
	opts.Logger = log.Named("images")

	client := &http.Client{Timeout: u.Config.Images.Timeout}
	cache := imagecache.New(imagecache.Auto{
		HTTP: imagecache.NewHTTPFetcher(client, imagecache.DefaultBreakerConfig(), log.Named("fetch")),
		File: imagecache.FileFetcher{},
	}, opts)

	return app.Run(app.Options{
		Config:   u.Config,
		Store:    u.Persistence,
		Cache:    cache,
		Logger:   log,
		Recorder: recorder,
	})
}
