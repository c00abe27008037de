package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/mathlens/internal/config"
	"github.com/dshills/mathlens/internal/document"
	"github.com/dshills/mathlens/internal/tui"
	"github.com/dshills/mathlens/internal/typeset"
)

// Options configures the application. Flag values override the config file.
type Options struct {
	// InputPath is the Markdown source file.
	InputPath string

	// OutputPath overrides the configured HTML output path.
	OutputPath string

	// ConfigPath is an explicit config file location.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Watch re-renders whenever the input file changes.
	Watch bool

	// Live opens the terminal preview instead of writing HTML.
	Live bool
}

// App coordinates the rendering pipeline for one invocation.
type App struct {
	opts     Options
	cfg      config.Config
	logger   *Logger
	metrics  *Metrics
	ts       *typeset.Typesetter
	renderer *document.Renderer

	done chan struct{}
}

// New validates options, loads configuration, and builds the pipeline.
func New(opts Options) (*App, error) {
	if opts.InputPath == "" {
		return nil, ErrNoInput
	}
	if opts.Watch && opts.Live {
		return nil, ErrLiveAndWatch
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.OutputPath != "" {
		cfg.Output = opts.OutputPath
	}

	metrics := NewMetrics()
	ts := typeset.New(&meteredEngine{
		inner:   typeset.NewHTMLEngine(),
		metrics: metrics,
	})

	return &App{
		opts:     opts,
		cfg:      cfg,
		logger:   NewLogger(ParseLogLevel(cfg.LogLevel), nil),
		metrics:  metrics,
		ts:       ts,
		renderer: document.NewRenderer(ts, cfg.Theme),
		done:     make(chan struct{}),
	}, nil
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.logger
}

// Metrics returns the metrics tracker.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// Run executes the selected mode and blocks until it completes.
func (a *App) Run() error {
	switch {
	case a.opts.Live:
		return a.runLive()
	case a.opts.Watch:
		return a.runWatch()
	default:
		return a.renderOnce()
	}
}

// Shutdown stops a watch loop. Safe to call more than once.
func (a *App) Shutdown() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

// renderOnce renders the input file to the configured output.
func (a *App) renderOnce() error {
	start := time.Now()

	src, err := os.ReadFile(a.opts.InputPath)
	if err != nil {
		return NewOperationError("read", a.opts.InputPath, err)
	}

	fragment, err := a.renderer.Render(src)
	if err != nil {
		return NewOperationError("render", a.opts.InputPath, err)
	}
	page := document.Page(filepath.Base(a.opts.InputPath), fragment)

	if a.cfg.Output == "" {
		if _, err := os.Stdout.Write(page); err != nil {
			return NewOperationError("write", "stdout", err)
		}
	} else {
		if err := os.WriteFile(a.cfg.Output, page, 0o644); err != nil {
			return NewOperationError("write", a.cfg.Output, err)
		}
	}

	a.metrics.RecordDocument(time.Since(start))
	snap := a.metrics.Snapshot()
	a.logger.WithComponent("render").Debug("rendered %s: %d formulas, %d failures",
		a.opts.InputPath, snap.Formulas, snap.RenderFailures)
	return nil
}

// runLive opens the terminal preview over the input file.
func (a *App) runLive() error {
	src, err := os.ReadFile(a.opts.InputPath)
	if err != nil {
		return NewOperationError("read", a.opts.InputPath, err)
	}

	preview, err := tui.New(a.opts.InputPath, string(src), a.ts)
	if err != nil {
		return NewOperationError("preview", a.opts.InputPath, err)
	}
	return preview.Run()
}
