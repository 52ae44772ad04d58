package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"discauthor/internal/config"
	"discauthor/internal/testsupport"
)

const demoProject = `name = "Demo Disc"

[vmgm]
name = "Main"

[[vmgm.menus]]
key = "top"
name = "Top"
entry = "title"
videos = [{ file = "media/menu.mpg" }]
buttons = [{ name = "play", commands = "jump f:@feature;" }]

[[titlesets]]
key = "main"
name = "Feature"
audio_langs = ["en"]

[[titlesets.titles]]
key = "feature"
name = "Feature"
videos = [{ file = "media/feature.mpg", chapters = "0,5:00" }]
post = "call f:@top;"
`

const faultyProject = `name = "Broken"

[[titlesets]]
name = "Feature"

[[titlesets.titles]]
key = "empty"
name = "Empty"
post = "jump f:@teaser;"

[detached]

[[detached.titles]]
key = "teaser"
name = "Teaser"
videos = [{ file = "media/feature.mpg" }]
`

type cliTestEnv struct {
	cfg         *config.Config
	configPath  string
	projectPath string
	faultyPath  string
	baseDir     string
}

type envOption func(*config.Config)

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("DISCAUTHOR_OUTPUT_DIR", "")
	t.Setenv("VIDEO_FORMAT", "")
	t.Setenv("NO_COLOR", "1")

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Logging.Level = "error"
	for _, opt := range opts {
		opt(cfg)
	}

	configPath := filepath.Join(homeDir, ".config", "discauthor", "config.toml")
	writeTestConfig(t, configPath, cfg)

	projectDir := filepath.Join(base, "project")
	for _, name := range []string{"media/menu.mpg", "media/feature.mpg"} {
		writeFile(t, filepath.Join(projectDir, name), "mpeg")
	}
	projectPath := filepath.Join(projectDir, "demo.toml")
	writeFile(t, projectPath, demoProject)
	faultyPath := filepath.Join(projectDir, "broken.toml")
	writeFile(t, faultyPath, faultyProject)

	return &cliTestEnv{
		cfg:         cfg,
		configPath:  configPath,
		projectPath: projectPath,
		faultyPath:  faultyPath,
		baseDir:     base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	writeFile(t, path, string(data))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
