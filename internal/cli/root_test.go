package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewDefaults(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if c.Logger == nil {
		t.Fatal("New() logger is nil")
	}
	if c.Config == nil {
		t.Fatal("New() config is nil")
	}
	if c.Config.Render.Format != "svg" {
		t.Errorf("Config.Render.Format = %q, want %q", c.Config.Render.Format, "svg")
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)

	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("logger level = %v, want %v", got, log.DebugLevel)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}

	want := []string{"demo", "inspect", "render", "serve", "tui", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root command is missing persistent flag --%s", name)
		}
	}
}
