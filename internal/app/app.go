package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/mode"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/systheme"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the Marquee application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // overrides the config's prefs_path
	PollEvery  time.Duration // overrides the config's poll_interval; zero keeps it

	// Detector replaces the platform detector chain. Tests use it.
	Detector systheme.Detector
	// Logger replaces the file logger. Tests use it.
	Logger *zap.Logger
}

// runtime is everything a command needs, opened from Options.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	kv     prefs.KV
	store  *mode.Store
	owned  bool // logger was built here and must be synced
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		cfg.PrefsPath = opts.PrefsPath
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	return cfg, nil
}

func open(opts Options) (*runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: opts.Logger}
	if rt.logger == nil {
		logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		rt.logger = logger
		rt.owned = true
	}

	kv, err := prefs.Open(prefs.Options{
		Backend:    cfg.PrefsBackend,
		Path:       cfg.PrefsPath,
		SQLitePath: cfg.SQLitePath,
	}, rt.logger.Named("prefs"))
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	rt.kv = kv
	rt.store = mode.New(kv, rt.logger.Named("mode"))
	return rt, nil
}

func (rt *runtime) close() {
	if closer, ok := rt.kv.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			rt.logger.Warn("close prefs failed", zap.Error(err))
		}
	}
	if rt.owned {
		_ = rt.logger.Sync()
	}
}

// Run boots the Marquee TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := open(opts)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A nil watcher means no system signal; the store then only loads.
	watcher := StartWatcher(ctx, rt.cfg, opts.Detector, rt.logger.Named("systheme"))
	var src systheme.Source
	if watcher != nil {
		src = watcher
	}

	unsubscribe := rt.store.Initialize(src)
	defer unsubscribe()

	rt.logger.Info("marquee started",
		zap.Bool("night_mode", rt.store.NightMode()),
		zap.Bool("follows_system", src != nil),
		zap.String("prefs_backend", rt.cfg.PrefsBackend),
	)

	return ui.Run(ui.Options{
		Context:       ctx,
		Store:         rt.store,
		FollowsSystem: src != nil,
	})
}
