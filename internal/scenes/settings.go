package scenes

import (
	"context"
	"slices"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/store"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/theme"
	"github.com/atomicstack/mizu/internal/widget"
	"go.uber.org/zap"
)

// SettingsKey is where preferences persist.
const SettingsKey = "mizuOS-settings"

// Preferences are the user-tunable shell settings.
type Preferences struct {
	Theme    string `json:"theme"`
	Language string `json:"lang"`
	Mode     string `json:"navigation"`
}

// Settings edits and persists Preferences.
type Settings struct {
	base
	defaults Preferences
	prefs    Preferences
	store    store.Store
	host     *widget.Host
	rows     []*widget.Button
}

// NewSettings builds the scene. defaults seed first runs and Reset.
func NewSettings(env *Env, defaults Preferences) *Settings {
	return &Settings{
		base:     base{env: env},
		defaults: defaults,
		prefs:    defaults,
		store:    store.Namespace(env.Store, store.Prefix),
	}
}

// Initialize loads saved preferences and applies them before any scene
// renders.
func (s *Settings) Initialize() {
	s.prefs = store.Load(context.Background(), s.store, SettingsKey, s.defaults)
	s.apply()
}

// Preferences returns the active settings.
func (s *Settings) Preferences() Preferences {
	return s.prefs
}

func (s *Settings) Activate(any) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.host = widget.NewHost("settings", s.mode())
	t := s.env.text
	s.rows = []*widget.Button{
		widget.NewButton("theme", "", widget.Rect{}, func() {
			s.prefs.Theme = cycle(theme.Names(), s.prefs.Theme)
			s.commit()
		}),
		widget.NewButton("language", "", widget.Rect{}, func() {
			s.prefs.Language = cycle(Languages, s.prefs.Language)
			s.commit()
		}),
		widget.NewButton("navigation", "", widget.Rect{}, func() {
			s.prefs.Mode = cycle([]string{"focus", "free"}, s.prefs.Mode)
			s.commit()
		}),
		widget.NewButton("reset", t("reset"), widget.Rect{}, func() {
			s.prefs = s.defaults
			s.commit()
		}),
		widget.NewButton("back", t("back"), widget.Rect{}, func() {
			s.emit(bus.ChangeScene{Scene: "menu"})
		}),
	}
	s.layout()
	ws := make([]widget.Widget, len(s.rows))
	for i, r := range s.rows {
		ws[i] = r
	}
	s.host.SetWidgets(ws...)
	s.bindPointer(s.host)
	s.onResize(s.host, s.layout)

	bus.On(s.group, func(p bus.Navigate) error {
		s.host.Navigate(p.Direction)
		return nil
	})
	bus.On(s.group, func(p bus.Action) error {
		switch p.Type {
		case bus.Positive:
			s.host.Activate()
		case bus.Negative:
			s.emit(bus.ChangeScene{Scene: "menu"})
		}
		return nil
	})
	return nil
}

func (s *Settings) Deactivate() {
	s.end()
}

func (s *Settings) layout() {
	t := s.env.text
	s.rows[0].SetLabel(t("theme") + ": " + s.prefs.Theme)
	s.rows[1].SetLabel(t("language") + ": " + s.prefs.Language)
	s.rows[2].SetLabel(t("navigation") + ": " + s.prefs.Mode)
	s.rows[3].SetLabel(t("reset"))
	s.rows[4].SetLabel(t("back"))
	w := min(max(s.canvas.Width()-8, 20), 40)
	x := max((s.canvas.Width()-w)/2, 2)
	for i, r := range s.rows {
		r.SetBounds(widget.Rect{X: x, Y: 4 + i*2, W: w, H: 1})
	}
}

// commit persists, applies and announces the current preferences.
func (s *Settings) commit() {
	if err := store.Save(context.Background(), s.store, SettingsKey, s.prefs); err != nil {
		logging.Warn("settings save failed", zap.Error(err))
	}
	s.apply()
	if s.active {
		s.layout()
	}
	s.emit(bus.SettingsChanged{Theme: s.prefs.Theme, Language: s.prefs.Language, Mode: s.prefs.Mode})
}

func (s *Settings) apply() {
	s.env.Theme = theme.ByName(s.prefs.Theme)
	s.env.Language = s.prefs.Language
	focus := widget.ParseMode(s.prefs.Mode) == widget.ModeFocus
	if in := s.env.Kernel.Input; in.NavigationMode() != focus {
		in.SetNavigationMode(focus)
	}
}

// cycle returns the entry after cur, wrapping; unknown values restart.
func cycle(values []string, cur string) string {
	if len(values) == 0 {
		return cur
	}
	i := slices.Index(values, cur)
	return values[(i+1)%len(values)]
}

func (s *Settings) Render(c *surface.Canvas) {
	st := s.env.styles()
	ws := st.Widgets()
	c.Fill(c.Bounds(), ' ', st.Background)
	c.TextCenter(1, s.env.text("settings"), st.Title)
	for _, r := range s.rows {
		widget.RenderItem(c, r, ws)
	}
	widget.RenderCursor(c, s.host.Cursor(), ws)
}

func (s *Settings) Hints() []string {
	return []string{"enter change", "esc back"}
}
