package scenes

import (
	"github.com/atomicstack/mizu/internal/kernel/state"
)

// Set is the registered scene instances, for callers that need to reach
// into one.
type Set struct {
	Boot       *Boot
	Menu       *Menu
	Desktop    *Desktop
	Fullscreen *Fullscreen
	Settings   *Settings
	Failure    *Failure
}

// Install builds every scene and registers it under its state name.
func Install(env *Env, defaults Preferences) *Set {
	set := &Set{
		Boot:       NewBoot(env),
		Menu:       NewMenu(env),
		Desktop:    NewDesktop(env),
		Fullscreen: NewFullscreen(env),
		Settings:   NewSettings(env, defaults),
		Failure:    NewFailure(env),
	}
	k := env.Kernel
	k.Register(string(state.Boot), set.Boot)
	k.Register(string(state.Menu), set.Menu)
	k.Register(string(state.App), set.Desktop)
	k.Register(string(state.Fullscreen), set.Fullscreen)
	k.Register(string(state.Settings), set.Settings)
	k.Register(string(state.Error), set.Failure)
	return set
}
