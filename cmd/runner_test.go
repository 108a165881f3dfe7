package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
	tu "github.com/simon-weber/Unofficial-Google-Music-API/internal/testing"
)

func testApp(out *bytes.Buffer) *cli.Command {
	runner := NewRunner(RunnerOpts{
		Config: tu.NewConfig(),
		Logger: tu.NewLogger(),
		Output: out,
	})
	return &cli.Command{
		Name:     "gmusic",
		Commands: runner.register(),
	}
}

func TestNewRunner(t *testing.T) {
	t.Run("with all dependencies provided", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := tu.NewLogger()
		output := &bytes.Buffer{}

		runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
	})

	t.Run("with defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil || runner.logger == nil || runner.output == nil {
			t.Error("expected defaults to be filled in")
		}
	})
}

func TestRepairCommand(t *testing.T) {
	t.Run("repairs a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		if err := os.WriteFile(path, []byte(`[1,,2]`), 0o644); err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		app := testApp(&out)
		if err := app.Run(context.Background(), []string{"gmusic", "repair", path}); err != nil {
			t.Fatalf("repair: %v", err)
		}
		if got := strings.TrimSpace(out.String()); got != "[1,null,2]" {
			t.Errorf("output = %q, want [1,null,2]", got)
		}
	})

	t.Run("verify fails on unrepairable input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.txt")
		if err := os.WriteFile(path, []byte(`[1,,2`), 0o644); err != nil {
			t.Fatal(err)
		}

		var out bytes.Buffer
		app := testApp(&out)
		err := app.Run(context.Background(), []string{"gmusic", "repair", "--verify", path})
		if err == nil {
			t.Error("verify should fail on unparseable input")
		}
	})
}

func TestExpectationsCommand(t *testing.T) {
	var out bytes.Buffer
	app := testApp(&out)
	if err := app.Run(context.Background(), []string{"gmusic", "expectations", "--pretty=false"}); err != nil {
		t.Fatalf("expectations: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("registry dump is empty")
	}

	names := map[string]bool{}
	for _, row := range rows {
		names[row["name"].(string)] = true
	}
	for _, want := range []string{"rating", "title", "lastPlayed", "playlistEntryId"} {
		if !names[want] {
			t.Errorf("registry dump is missing %q", want)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	var out bytes.Buffer
	app := testApp(&out)
	if err := app.Run(context.Background(), []string{"gmusic", "config", "init", "--path", path}); err != nil {
		t.Fatalf("config init: %v", err)
	}

	if _, err := shared.LoadConfig(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}

	t.Run("refuses to overwrite", func(t *testing.T) {
		if err := app.Run(context.Background(), []string{"gmusic", "config", "init", "--path", path}); err == nil {
			t.Error("second init should fail")
		}
	})
}
