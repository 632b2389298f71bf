package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/today/internal/app"
	"github.com/sandeepkv93/today/internal/clock"
	"github.com/sandeepkv93/today/internal/config"
	"github.com/sandeepkv93/today/internal/haptics"
	"github.com/sandeepkv93/today/internal/notify"
	"github.com/sandeepkv93/today/internal/scheduler"
	"github.com/sandeepkv93/today/internal/storage"
	"github.com/sandeepkv93/today/internal/widget"
)

// session holds everything one invocation opened, so it can be closed in
// reverse order.
type session struct {
	cfg      config.Runtime
	loc      *time.Location
	logger   *slog.Logger
	store    storage.Store
	engine   *scheduler.Engine
	reloader *widget.FileReloader
	list     *app.TaskList
	closers  []func() error
}

type sessionOptions struct {
	// Interactive starts the reminder engine and terminal bell. One-shot
	// subcommands leave both off.
	Interactive bool
	Stdout      io.Writer
}

func openSession(ctx context.Context, cfg config.Runtime, opts sessionOptions) (*session, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	rt := &session{cfg: cfg, loc: loc}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	rt.logger = logger
	rt.closers = append(rt.closers, closeLog)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.store = store
	rt.closers = append(rt.closers, closeStore)

	deps := app.Deps{
		Store:    store,
		Clock:    clock.System{},
		Location: loc,
		Logger:   logger,
	}
	if !cfg.NoopCollaborators {
		rt.reloader = widget.NewFileReloader(store, deps.Clock, loc, cfg.WidgetPath)
		deps.Widget = rt.reloader
		if opts.Interactive {
			rt.engine = scheduler.NewEngine(cfg.SchedulerBuffer)
			rt.engine.Start()
			rt.closers = append(rt.closers, func() error { rt.engine.Stop(); return nil })
			deps.Scheduler = notify.NewEngineScheduler(rt.engine, deps.Clock, loc)
			if cfg.Haptics && opts.Stdout != nil {
				deps.Haptics = haptics.NewBell(opts.Stdout)
			}
		}
	}

	rt.list = app.New(ctx, deps)
	if rt.engine != nil {
		n := rt.list.RestoreReminders()
		logger.Debug("reminders restored", "count", n)
	}
	return rt, nil
}

func (rt *session) Close() error {
	var first error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	rt.closers = nil
	return first
}

func (rt *session) notifier() notify.DesktopNotifier {
	if rt.cfg.NoopCollaborators || !rt.cfg.DesktopNotifications {
		return notify.NoopDesktopNotifier{}
	}
	return notify.ExecDesktopNotifier{}
}

// openLogger writes structured logs to path through tea.LogToFile, so the
// TUI's own log output lands in the same file. An empty path discards.
func openLogger(path string) (*slog.Logger, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := tea.LogToFile(path, "today")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f.Close, nil
}

func openStore(cfg config.Runtime) (storage.Store, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.StorePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create store dir: %w", err)
			}
		}
		s, err := storage.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendJSON:
		return storage.NewFileStore(cfg.StorePath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StoreBackend)
	}
}
