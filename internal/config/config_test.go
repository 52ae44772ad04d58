package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"discauthor/internal/config"
)

func TestLoadDefaultConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DISCAUTHOR_OUTPUT_DIR", "")
	t.Setenv("VIDEO_FORMAT", "")
	t.Chdir(t.TempDir())

	cfg, path, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false, got true with path %q", path)
	}

	expectedOutput := filepath.Join(tempHome, "dvd")
	if cfg.Paths.OutputDir != expectedOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, expectedOutput)
	}
	expectedState := filepath.Join(tempHome, ".local", "share", "discauthor")
	if cfg.Paths.StateDir != expectedState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, expectedState)
	}
	if cfg.HistoryPath() != filepath.Join(expectedState, "history.db") {
		t.Fatalf("unexpected history path %q", cfg.HistoryPath())
	}
	if !cfg.Render.Comments {
		t.Fatal("expected comments enabled by default")
	}
	if cfg.Render.AddressAttributes {
		t.Fatal("expected address attributes disabled by default")
	}
	if cfg.DVDAuthor.Binary != "dvdauthor" {
		t.Fatalf("unexpected binary %q", cfg.DVDAuthor.Binary)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DISCAUTHOR_OUTPUT_DIR", "")
	t.Setenv("VIDEO_FORMAT", "")

	configPath := filepath.Join(tempHome, "config.toml")
	payload := struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Render struct {
			Comments bool `toml:"comments"`
			Jumppad  bool `toml:"jumppad"`
		} `toml:"render"`
		DVDAuthor struct {
			VideoFormat string `toml:"video_format"`
			Timeout     int    `toml:"timeout"`
		} `toml:"dvdauthor"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}{}
	payload.Paths.OutputDir = "~/authored"
	payload.Paths.StateDir = "~/state"
	payload.Render.Comments = false
	payload.Render.Jumppad = true
	payload.DVDAuthor.VideoFormat = "PAL"
	payload.DVDAuthor.Timeout = 60
	payload.Logging.Format = "JSON"
	payload.Logging.Level = "Debug"

	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if path != configPath {
		t.Fatalf("unexpected path %q", path)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "authored") {
		t.Fatalf("unexpected output dir %q", cfg.Paths.OutputDir)
	}
	if cfg.Render.Comments || !cfg.Render.Jumppad {
		t.Fatalf("unexpected render config %+v", cfg.Render)
	}
	if cfg.DVDAuthor.VideoFormat != "pal" {
		t.Fatalf("expected normalized video format, got %q", cfg.DVDAuthor.VideoFormat)
	}
	if cfg.DVDAuthor.Timeout != 60 {
		t.Fatalf("unexpected timeout %d", cfg.DVDAuthor.Timeout)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestEnvironmentFallbacks(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DISCAUTHOR_OUTPUT_DIR", filepath.Join(tempHome, "from-env"))
	t.Setenv("VIDEO_FORMAT", "NTSC")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "from-env") {
		t.Fatalf("expected env output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.DVDAuthor.VideoFormat != "ntsc" {
		t.Fatalf("expected env video format, got %q", cfg.DVDAuthor.VideoFormat)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "video format",
			mutate: func(c *config.Config) { c.DVDAuthor.VideoFormat = "secam" },
			want:   "dvdauthor.video_format",
		},
		{
			name:   "log level",
			mutate: func(c *config.Config) { c.Logging.Level = "loud" },
			want:   "logging.level",
		},
		{
			name:   "output dir",
			mutate: func(c *config.Config) { c.Paths.OutputDir = "" },
			want:   "paths.output_dir",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(tempHome, "config.toml")
	if err := os.WriteFile(configPath, []byte("[render]\nbogus = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to fail")
	}
}

func TestCreateSample(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DISCAUTHOR_OUTPUT_DIR", "")
	t.Setenv("VIDEO_FORMAT", "")
	path := filepath.Join(tempHome, "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sample config to exist: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}
