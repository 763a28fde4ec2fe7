package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/mizu/internal/apps"
	"github.com/atomicstack/mizu/internal/kernel"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/metrics"
	"github.com/atomicstack/mizu/internal/scenes"
	"github.com/atomicstack/mizu/internal/store"
	"github.com/atomicstack/mizu/internal/theme"
	"github.com/atomicstack/mizu/internal/timer"
	"github.com/atomicstack/mizu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Config describes user-provided application options.
type Config struct {
	Width       int
	Height      int
	ShowFooter  bool
	Mouse       bool
	StorePath   string
	MetricsAddr string
	Countdown   int
	Mode        string
	Theme       string
	CursorStep  int
	BootStep    time.Duration
	States      map[string][]string
}

// Shell is a fully wired shell ready to hand to Bubble Tea.
type Shell struct {
	Kernel  *kernel.Kernel
	Metrics *metrics.Metrics
	Store   store.Store
	Apps    *apps.Manager
	Env     *scenes.Env
	Scenes  *scenes.Set
	Model   *ui.Model
}

// Build wires the store, metrics, kernel, mini-apps and scenes around
// sched.
func Build(cfg Config, sched timer.Scheduler) (*Shell, error) {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	m := metrics.New()
	k, err := kernel.New(kernel.Options{
		Observer: m,
		States:   cfg.States,
		FreeMode: cfg.Mode == "free",
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("build kernel: %w", err)
	}
	m.Watch(k.Bus)

	mgr := apps.NewManager(k.Bus, st)
	for _, def := range apps.Builtin() {
		if err := mgr.Register(def); err != nil {
			st.Close()
			return nil, fmt.Errorf("register %s: %w", def.ID, err)
		}
	}

	env := &scenes.Env{
		Kernel:     k,
		Scheduler:  sched,
		Store:      st,
		Apps:       mgr,
		Theme:      theme.ByName(cfg.Theme),
		Language:   "en",
		Countdown:  cfg.Countdown,
		CursorStep: cfg.CursorStep,
		BootStep:   cfg.BootStep,
	}
	set := scenes.Install(env, scenes.Preferences{
		Theme:    env.Theme.Name,
		Language: env.Language,
		Mode:     cfg.Mode,
	})
	model := ui.NewModel(ui.Options{
		Kernel:     k,
		Scheduler:  sched,
		Styles:     func() *theme.Styles { return env.Theme },
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Mouse:      cfg.Mouse,
	})
	return &Shell{
		Kernel:  k,
		Metrics: m,
		Store:   st,
		Apps:    mgr,
		Env:     env,
		Scenes:  set,
		Model:   model,
	}, nil
}

// Close lets open windows save, shuts the kernel down and closes the store.
func (s *Shell) Close() error {
	s.Apps.CloseAll()
	s.Kernel.Shutdown()
	return s.Store.Close()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	sh, err := Build(cfg, timer.NewTea())
	if err != nil {
		return err
	}
	defer func() {
		if err := sh.Close(); err != nil {
			logging.Warn("store close failed", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := sh.Metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Error(err)
			}
		}()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(sh.Model, opts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
