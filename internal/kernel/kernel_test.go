package kernel

import (
	"errors"
	"testing"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScene struct {
	name  string
	log   *[]string
	fail  error
	inits int
	data  any
	c     *surface.Canvas
}

func (p *stubScene) Activate(data any) error {
	*p.log = append(*p.log, "activate:"+p.name)
	p.data = data
	return p.fail
}

func (p *stubScene) Deactivate() {
	*p.log = append(*p.log, "deactivate:"+p.name)
}

func (p *stubScene) Initialize()                    { p.inits++ }
func (p *stubScene) SetContainer(c *surface.Canvas) { p.c = c }

func boot(t *testing.T, opts Options, names ...string) (*Kernel, map[string]*stubScene, *[]string) {
	t.Helper()
	k, err := New(opts)
	require.NoError(t, err)
	log := &[]string{}
	stubs := make(map[string]*stubScene)
	for _, name := range names {
		p := &stubScene{name: name, log: log}
		stubs[name] = p
		k.Register(name, p)
	}
	k.Initialize(surface.New(40, 12))
	return k, stubs, log
}

var allScenes = []string{"boot", "menu", "app", "fullscreen", "settings", "error"}

func TestEndToEndSceneOrder(t *testing.T) {
	k, _, _ := boot(t, Options{}, allScenes...)
	type pair struct{ from, to string }
	var seen []pair
	bus.On(k.Bus, func(p bus.SceneChanged) error {
		seen = append(seen, pair{p.From, p.To})
		return nil
	})

	require.True(t, k.Start())
	k.Bus.Emit(bus.ChangeScene{Scene: "menu"})
	k.Bus.Emit(bus.ChangeScene{Scene: "settings"})
	k.Bus.Emit(bus.ChangeScene{Scene: "menu"})

	assert.Equal(t, []pair{
		{"", "boot"},
		{"boot", "menu"},
		{"menu", "settings"},
		{"settings", "menu"},
	}, seen)
	assert.Equal(t, "menu", k.Status().CurrentScene)
	assert.Equal(t, "menu", k.Status().SystemState)
}

func TestChangeSceneRefusesIllegalTransition(t *testing.T) {
	k, stubs, _ := boot(t, Options{}, allScenes...)
	require.True(t, k.Start())

	k.Bus.Emit(bus.ChangeScene{Scene: "settings"})
	assert.Equal(t, "boot", k.Status().CurrentScene)
	assert.Equal(t, "boot", k.Status().SystemState)
	assert.Nil(t, stubs["settings"].data)
}

func TestChangeSceneCarriesData(t *testing.T) {
	k, stubs, _ := boot(t, Options{}, allScenes...)
	require.True(t, k.Start())
	k.Bus.Emit(bus.ChangeScene{Scene: "menu", Data: "from-boot"})
	assert.Equal(t, "from-boot", stubs["menu"].data)
}

func TestNonStateSceneSwitchesDirectly(t *testing.T) {
	k, _, _ := boot(t, Options{}, "boot", "about")
	require.True(t, k.Start())
	assert.True(t, k.ChangeScene("about", nil))
	assert.Equal(t, "about", k.Status().CurrentScene)
	assert.Equal(t, "boot", k.Status().SystemState)
}

func TestConfiguredStates(t *testing.T) {
	k, _, _ := boot(t, Options{States: map[string][]string{
		"boot":  {"kiosk"},
		"kiosk": {"menu"},
	}}, "boot", "menu")
	require.True(t, k.Start())
	assert.True(t, k.ChangeScene("kiosk", nil))
	assert.Equal(t, "kiosk", k.Status().SystemState)
	assert.True(t, k.ChangeScene("menu", nil))
	assert.Equal(t, "menu", k.Status().CurrentScene)

	_, err := New(Options{States: map[string][]string{"menu": {"nowhere"}}})
	assert.Error(t, err)
}

func TestInitializeHandsSurfaceToScenes(t *testing.T) {
	k, stubs, _ := boot(t, Options{}, "boot", "menu")
	for _, p := range stubs {
		assert.NotNil(t, p.c)
		assert.Equal(t, 1, p.inits)
	}
	assert.True(t, k.Status().Initialized)
	assert.Equal(t, []string{"boot", "menu"}, k.Status().RegisteredScenes)
}

func TestControlsRouteSystemActions(t *testing.T) {
	k, _, _ := boot(t, Options{}, allScenes...)
	require.True(t, k.Start())
	k.ChangeScene("menu", nil)

	k.Bus.Emit(bus.ButtonAction{Action: ControlSettings})
	assert.Equal(t, "settings", k.Status().CurrentScene)
	k.Bus.Emit(bus.ButtonAction{Action: ControlMenu})
	assert.Equal(t, "menu", k.Status().CurrentScene)
	k.Bus.Emit(bus.ButtonAction{Action: ControlRestart})
	assert.Equal(t, "boot", k.Status().CurrentScene)
	k.Bus.Emit(bus.ButtonAction{Action: "unknown"})
	assert.Equal(t, "boot", k.Status().CurrentScene)
}

func TestSystemErrorMovesToErrorState(t *testing.T) {
	k, stubs, _ := boot(t, Options{}, allScenes...)
	require.True(t, k.Start())

	boom := errors.New("disk on fire")
	k.Bus.Emit(bus.SystemError{Err: boom})
	assert.Equal(t, "error", k.Status().CurrentScene)
	assert.Equal(t, boom, stubs["error"].data)
	assert.Equal(t, boom, k.LastError())

	k.Bus.Emit(bus.SystemError{Err: errors.New("again")})
	assert.Equal(t, "error", k.Status().SystemState)
}

func TestFailedBootActivationLandsOnErrorScene(t *testing.T) {
	k, err := New(Options{})
	require.NoError(t, err)
	log := &[]string{}
	k.Register("boot", &stubScene{name: "boot", log: log, fail: errors.New("no surface")})
	errScene := &stubScene{name: "error", log: log}
	k.Register("error", errScene)
	k.Initialize(surface.New(10, 4))

	assert.False(t, k.Start())
	assert.Equal(t, "error", k.Status().CurrentScene)
	require.Error(t, k.LastError())
	assert.Contains(t, k.LastError().Error(), "no surface")
}

func TestFailedActivationRestoresPreviousScene(t *testing.T) {
	k, stubs, log := boot(t, Options{}, allScenes...)
	stubs["app"].fail = errors.New("window manager offline")
	require.True(t, k.Start())
	require.True(t, k.ChangeScene("menu", nil))
	*log = nil

	assert.False(t, k.ChangeScene("app", nil))
	assert.Equal(t, "menu", k.Status().CurrentScene)
	assert.Equal(t, "menu", k.Status().SystemState)
	assert.Equal(t, []string{"deactivate:menu", "activate:app", "activate:menu"}, *log)
	require.Error(t, k.LastError())
	assert.Contains(t, k.LastError().Error(), "window manager offline")

	stubs["app"].fail = nil
	assert.True(t, k.ChangeScene("app", nil))
	assert.Equal(t, "app", k.Status().CurrentScene)
	assert.Equal(t, "app", k.Status().SystemState)
}

func TestFailedActivationPrefersReachableErrorScene(t *testing.T) {
	k, stubs, _ := boot(t, Options{}, allScenes...)
	stubs["menu"].fail = errors.New("menu assets missing")
	require.True(t, k.Start())

	assert.False(t, k.ChangeScene("menu", nil))
	assert.Equal(t, "error", k.Status().CurrentScene)
	assert.Equal(t, "error", k.Status().SystemState)
	assert.ErrorIs(t, stubs["error"].data.(error), stubs["menu"].fail)
}

func TestShutdownTearsDownOnce(t *testing.T) {
	k, _, log := boot(t, Options{}, allScenes...)
	require.True(t, k.Start())
	shutdowns := 0
	k.Bus.Subscribe(bus.SystemShutdownEvent, func(bus.Event) error {
		shutdowns++
		return nil
	})
	k.Input.PointerMove(5, 5)

	k.Bus.Emit(bus.ButtonAction{Action: ControlShutdown})

	assert.True(t, k.Closed())
	assert.Equal(t, 1, shutdowns)
	assert.Equal(t, "deactivate:boot", (*log)[len(*log)-1])
	assert.Empty(t, k.Status().RegisteredScenes)
	assert.Equal(t, 0, k.Bus.Count(bus.ChangeSceneEvent))
	assert.Equal(t, 0, k.Input.Cursor().X)

	k.Shutdown()
	assert.Equal(t, 1, shutdowns)
}

func TestFreeModeOption(t *testing.T) {
	k, err := New(Options{FreeMode: true})
	require.NoError(t, err)
	assert.False(t, k.Input.NavigationMode())
}
