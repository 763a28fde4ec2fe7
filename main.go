package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/mizu/internal/app"
	"github.com/atomicstack/mizu/internal/config"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("mizu needs an interactive terminal on stdout")

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Configure(logging.Options{
		FilePath: cfg.Logging.FilePath,
		Level:    cfg.Logging.Level,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(2)
	}
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Sync()

	tty := probeTerminals()
	events.App.Start(startupTracePayload(cfg, tty))
	if !tty.interactive() {
		logging.Error(errNoTerminal)
		fmt.Fprintf(os.Stderr, "Error: %v\n", errNoTerminal)
		os.Exit(1)
	}

	err := app.Run(cfg.App)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
		logging.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for the trace stream.
func startupTracePayload(cfg config.Config, tty terminals) map[string]any {
	flags := make(map[string]any, len(cfg.Flags)+4)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	flags["logLevel"] = cfg.Logging.Level
	if cfg.File != "" {
		flags["config"] = cfg.File
	}
	payload := map[string]any{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// terminal is what one standard descriptor reports about itself.
type terminal struct {
	Name   string `json:"name"`
	TTY    bool   `json:"tty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

type terminals []terminal

func probeTerminals() terminals {
	fds := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	out := make(terminals, 0, len(fds))
	for _, d := range fds {
		t := terminal{Name: d.name}
		fd := int(d.file.Fd())
		if term.IsTerminal(fd) {
			t.TTY = true
			w, h, err := term.GetSize(fd)
			if err != nil {
				t.Error = err.Error()
			}
			t.Width, t.Height = w, h
		}
		out = append(out, t)
	}
	return out
}

// interactive reports whether the UI has a terminal to draw on.
func (ts terminals) interactive() bool {
	for _, t := range ts {
		if t.Name == "stdout" {
			return t.TTY
		}
	}
	return false
}
