package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/mizu/internal/app"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config captures runtime configuration for the shell.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Level    string
	Trace    bool
}

// EnvPrefix is prepended to every environment key, e.g. MIZU_WIDTH.
const EnvPrefix = "MIZU"

// Values is the flat layer shared by the config file, the environment and
// the command line.
type Values struct {
	Config      string              `toml:"-" yaml:"-" split_words:"true"`
	Width       int                 `toml:"width" yaml:"width" split_words:"true"`
	Height      int                 `toml:"height" yaml:"height" split_words:"true"`
	Footer      bool                `toml:"footer" yaml:"footer" split_words:"true"`
	Mouse       bool                `toml:"mouse" yaml:"mouse" split_words:"true"`
	Trace       bool                `toml:"trace" yaml:"trace" split_words:"true"`
	LogFile     string              `toml:"log-file" yaml:"log-file" split_words:"true"`
	LogLevel    string              `toml:"log-level" yaml:"log-level" split_words:"true"`
	Store       string              `toml:"store" yaml:"store" split_words:"true"`
	MetricsAddr string              `toml:"metrics-addr" yaml:"metrics-addr" split_words:"true"`
	Countdown   int                 `toml:"countdown" yaml:"countdown" split_words:"true"`
	Mode        string              `toml:"mode" yaml:"mode" split_words:"true"`
	Theme       string              `toml:"theme" yaml:"theme" split_words:"true"`
	CursorStep  int                 `toml:"cursor-step" yaml:"cursor-step" split_words:"true"`
	BootStep    Duration            `toml:"boot-step" yaml:"boot-step" split_words:"true"`
	States      map[string][]string `toml:"states" yaml:"states" ignored:"true"`
}

// Duration reads Go duration strings ("300ms") from files and environment.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Defaults returns the built-in values.
func Defaults() Values {
	return Values{
		Mouse:      true,
		LogLevel:   "info",
		Countdown:  10,
		Mode:       "focus",
		Theme:      "dark",
		CursorStep: 2,
		BootStep:   Duration(300 * time.Millisecond),
	}
}

// Load parses configuration from the config file, environment variables
// and CLI arguments.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs layers defaults, the config file, MIZU_* environment variables
// and args, later layers winning.
func LoadArgs(args []string) (Config, error) {
	fs := flag.NewFlagSet("mizu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	var cli Values
	configPath := fs.String("config", "", "path to a TOML or YAML config file")
	fs.IntVar(&cli.Width, "width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&cli.Height, "height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&cli.Footer, "footer", false, "enable footer hint row")
	fs.BoolVar(&cli.Mouse, "mouse", true, "enable mouse reporting")
	fs.BoolVar(&cli.Trace, "trace", false, "enable verbose JSON trace logging")
	fs.StringVar(&cli.LogFile, "log-file", "", "path to the log file")
	fs.StringVar(&cli.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&cli.Store, "store", "", "path to the SQLite store (empty keeps state in memory)")
	fs.StringVar(&cli.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.IntVar(&cli.Countdown, "countdown", 10, "menu auto-default countdown in seconds (0 disables)")
	fs.StringVar(&cli.Mode, "mode", "focus", "initial navigation mode (focus or free)")
	fs.StringVar(&cli.Theme, "theme", "dark", "colour theme")
	fs.IntVar(&cli.CursorStep, "cursor-step", 2, "free cursor step in cells per key press")
	fs.DurationVar((*time.Duration)(&cli.BootStep), "boot-step", 300*time.Millisecond, "delay between boot loading steps")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	values := Defaults()

	var env Values
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	file := env.Config
	if set["config"] {
		file = *configPath
	}
	if file != "" {
		if err := readFile(file, &values); err != nil {
			return Config{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &values); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	overlay(&values, cli, set)
	values.Config = file

	if err := values.validate(); err != nil {
		return Config{}, err
	}
	return values.build(args), nil
}

func readFile(path string, v *Values) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// overlay copies the explicitly set flags from cli onto v.
func overlay(v *Values, cli Values, set map[string]bool) {
	for name := range set {
		switch name {
		case "width":
			v.Width = cli.Width
		case "height":
			v.Height = cli.Height
		case "footer":
			v.Footer = cli.Footer
		case "mouse":
			v.Mouse = cli.Mouse
		case "trace":
			v.Trace = cli.Trace
		case "log-file":
			v.LogFile = cli.LogFile
		case "log-level":
			v.LogLevel = cli.LogLevel
		case "store":
			v.Store = cli.Store
		case "metrics-addr":
			v.MetricsAddr = cli.MetricsAddr
		case "countdown":
			v.Countdown = cli.Countdown
		case "mode":
			v.Mode = cli.Mode
		case "theme":
			v.Theme = cli.Theme
		case "cursor-step":
			v.CursorStep = cli.CursorStep
		case "boot-step":
			v.BootStep = cli.BootStep
		}
	}
}

func (v Values) validate() error {
	if v.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", v.Width)
	}
	if v.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", v.Height)
	}
	if v.Countdown < 0 {
		return fmt.Errorf("countdown must be >= 0 (got %d)", v.Countdown)
	}
	if v.CursorStep < 1 {
		return fmt.Errorf("cursor-step must be >= 1 (got %d)", v.CursorStep)
	}
	if v.BootStep <= 0 {
		return fmt.Errorf("boot-step must be > 0 (got %s)", v.BootStep.Duration())
	}
	switch v.Mode {
	case "focus", "free":
	default:
		return fmt.Errorf("mode must be focus or free (got %q)", v.Mode)
	}
	return nil
}

func (v Values) build(args []string) Config {
	return Config{
		App: app.Config{
			Width:       v.Width,
			Height:      v.Height,
			ShowFooter:  v.Footer,
			Mouse:       v.Mouse,
			StorePath:   v.Store,
			MetricsAddr: v.MetricsAddr,
			Countdown:   v.Countdown,
			Mode:        v.Mode,
			Theme:       v.Theme,
			CursorStep:  v.CursorStep,
			BootStep:    v.BootStep.Duration(),
			States:      v.States,
		},
		Logging: Logging{
			FilePath: v.LogFile,
			Level:    v.LogLevel,
			Trace:    v.Trace,
		},
		File: v.Config,
		Flags: map[string]string{
			"width":       strconv.Itoa(v.Width),
			"height":      strconv.Itoa(v.Height),
			"footer":      strconv.FormatBool(v.Footer),
			"mouse":       strconv.FormatBool(v.Mouse),
			"store":       v.Store,
			"metricsAddr": v.MetricsAddr,
			"countdown":   strconv.Itoa(v.Countdown),
			"mode":        v.Mode,
			"theme":       v.Theme,
			"cursorStep":  strconv.Itoa(v.CursorStep),
			"bootStep":    v.BootStep.Duration().String(),
			"states":      strings.Join(stateNames(v.States), ","),
		},
		Args: append([]string(nil), args...),
	}
}

func stateNames(states map[string][]string) []string {
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the assembled configuration is usable.
func Validate(cfg Config) error {
	for name, targets := range cfg.App.States {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("states: empty state name")
		}
		for _, target := range targets {
			if strings.TrimSpace(target) == "" {
				return fmt.Errorf("states: %s has an empty transition target", name)
			}
		}
	}
	return nil
}
