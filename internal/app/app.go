package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/five82/apodview/internal/apod"
	"github.com/five82/apodview/internal/config"
	"github.com/five82/apodview/internal/fetch"
	"github.com/five82/apodview/internal/logging"
	"github.com/five82/apodview/internal/metrics"
	"github.com/five82/apodview/internal/prefs"
	"github.com/five82/apodview/internal/state"
	"github.com/five82/apodview/internal/trivia"
	"github.com/five82/apodview/internal/ui"
)

// Options configure the apodview application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/apodview/prefs.toml
	EnvFiles   []string // empty loads ./.env when present
	Start      string   // initial start date; empty uses the default range
	End        string
}

// deps holds everything the UI needs, built before the program starts.
type deps struct {
	cfg        config.Config
	prefs      prefs.Prefs
	log        *slog.Logger
	logFile    io.Closer
	logPath    string
	prefsPath  string
	store      *state.Store
	metrics    *metrics.Metrics
	controller *fetch.Controller
}

func (d *deps) close() {
	if d.logFile != nil {
		_ = d.logFile.Close()
	}
}

// setup loads configuration and wires the fetch pipeline.
func setup(opts Options) (*deps, error) {
	if err := config.LoadDotEnv(opts.EnvFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apodview: %v (using defaults)\n", err)
	}

	d := &deps{cfg: cfg, prefs: userPrefs, logPath: cfg.LogPath, prefsPath: prefsPath}

	// The terminal belongs to the UI; without a log file, records are dropped.
	var logOut io.Writer = io.Discard
	if f, err := logging.OpenFile(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "apodview: %v (logging disabled)\n", err)
		d.logPath = ""
	} else {
		logOut = f
		d.logFile = f
	}
	d.log = logging.New(cfg.LogLevel, cfg.LogFormat, logOut)

	client, err := apod.NewClient(cfg.APIURL, cfg.APIKey, cfg.Timeout)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("init apod client: %w", err)
	}

	d.store = &state.Store{}
	d.metrics = metrics.New()
	d.controller = fetch.NewController(fetch.Options{
		Client:    client,
		Container: d.store,
		Facts:     trivia.NewDeck(),
		Logger:    d.log.With("component", "fetch"),
		Metrics:   d.metrics,
	})
	return d, nil
}

// Run boots the apodview TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	d, err := setup(opts)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.log.Info("apodview starting",
		"api_url", d.cfg.APIURL,
		"demo_key", !d.cfg.HasKey(),
		"metrics_addr", d.cfg.MetricsAddr,
	)

	if d.cfg.MetricsAddr != "" {
		addr, err := StartMetricsServer(ctx, d.cfg.MetricsAddr, d.metrics.Router(), d.log)
		if err != nil {
			// Metrics are optional; the gallery works without them.
			d.log.Warn("metrics server disabled", "error", err)
		} else {
			d.log.Info("metrics server listening", "addr", addr.String())
		}
	}

	err = ui.Run(ui.Options{
		Context:    ctx,
		Controller: d.controller,
		Store:      d.store,
		Metrics:    d.metrics,
		Logger:     d.log.With("component", "ui"),
		ThemeName:  d.prefs.Theme,
		PrefsPath:  d.prefsPath,
		LogPath:    d.logPath,
		DemoKey:    !d.cfg.HasKey(),
		Start:      opts.Start,
		End:        opts.End,
	})
	if err != nil {
		d.log.Error("ui exited with error", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	d.log.Info("apodview stopped")
	return nil
}
