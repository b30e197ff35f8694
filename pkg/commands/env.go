package commands

import (
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"tableflip.dev/daybook/pkg/config"
	"tableflip.dev/daybook/pkg/logging"
	"tableflip.dev/daybook/pkg/store"
)

// env is what every data command needs.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Persistence
}

// loadEnv reads the config and opens the store. The TUI owns the terminal,
// so toFile sends the log to the configured file instead of stderr.
func loadEnv(v *viper.Viper, toFile bool) (*env, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	lo := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if toFile {
		lo.File = cfg.LogFile
	} else {
		lo.Format = "console"
	}
	log, err := logging.New(lo)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(log.Named("store")))
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: p}, nil
}

func (e *env) Close() {
	_ = e.log.Sync()
}
