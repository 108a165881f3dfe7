package shared_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

func TestConfig(t *testing.T) {
	t.Run("defaults load from the embedded example", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		if cfg.Services.WebBaseURL != "https://music.google.com/music/" {
			t.Errorf("WebBaseURL = %q", cfg.Services.WebBaseURL)
		}
		if cfg.Client.UploaderName == "" {
			t.Error("UploaderName should have a default")
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Level = %q, want info", cfg.Log.Level)
		}
	})

	t.Run("round trip through a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := shared.CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile: %v", err)
		}

		cfg, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Services.SJBaseURL != "https://www.googleapis.com/sj/v1beta1/" {
			t.Errorf("SJBaseURL = %q", cfg.Services.SJBaseURL)
		}
	})

	t.Run("create refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := shared.CreateConfigFile(path); err != nil {
			t.Fatal(err)
		}
		if err := shared.CreateConfigFile(path); err == nil {
			t.Error("second create should fail")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := shared.LoadConfig(filepath.Join(t.TempDir(), "gone.toml")); err == nil {
			t.Error("missing config should fail to load")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := shared.LoadConfig(path); err == nil {
			t.Error("malformed config should fail to load")
		}
	})
}

func TestErrors(t *testing.T) {
	t.Run("parse error unwraps", func(t *testing.T) {
		inner := errors.New("bad token")
		err := &shared.ParseError{Input: "[1,,", Err: inner}
		if !errors.Is(err, inner) {
			t.Error("ParseError should unwrap its cause")
		}
	})

	t.Run("messages carry their context", func(t *testing.T) {
		cases := []struct {
			err  error
			want string
		}{
			{&shared.UnsupportedFiletypeError{Filename: "a.ogg", Supported: []string{"mp3"}}, "a.ogg"},
			{&shared.UnknownKindError{Kind: "sj#album"}, "sj#album"},
			{&shared.MutationFailedError{Index: 2, Code: "CONFLICT"}, "CONFLICT"},
			{&shared.CallFailure{Call: "search", Response: []byte("{}")}, "search"},
		}
		for _, tc := range cases {
			if got := tc.err.Error(); !strings.Contains(got, tc.want) {
				t.Errorf("%T message %q should mention %q", tc.err, got, tc.want)
			}
		}
	})
}
