package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"discauthor/internal/config"
	"discauthor/internal/linker"
	"discauthor/internal/services"
)

func TestBuildWritesDocument(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"build", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	docPath := filepath.Join(env.cfg.Paths.OutputDir, "demo_disc.xml")
	requireContains(t, out, "Wrote "+docPath)
	requireContains(t, out, "Titlesets: 1  Menus: 1  Titles: 1")

	data, err := os.ReadFile(docPath)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	doc := string(data)
	requireContains(t, doc, `<dvdauthor dest="`+filepath.Join(env.cfg.Paths.OutputDir, "demo_disc")+`"`)
	requireContains(t, doc, "jump titleset 1 title 1;")
	requireContains(t, doc, "call vmgm menu 1;")
	if strings.Contains(doc, "ID:") {
		t.Fatalf("document still contains identifiers:\n%s", doc)
	}

	out, _, err = runCLI(t, []string{"build", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	requireContains(t, out, "Unchanged since build")
}

func TestBuildToStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"build", "-o", "-", "--dest", "/srv/dvd/demo", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("expected document on stdout, got %q", out)
	}
	requireContains(t, out, `dest="/srv/dvd/demo"`)
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "demo_disc.xml")); !os.IsNotExist(err) {
		t.Fatalf("expected no document file, stat err=%v", err)
	}
}

func TestBuildMissingProjectIsRejected(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"build", filepath.Join(env.baseDir, "missing.toml")}, env.configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestCheckReportsEveryFault(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", env.faultyPath}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	var faults *linker.FaultError
	if !errors.As(err, &faults) {
		t.Fatalf("expected fault error, got %T: %v", err, err)
	}
	if code := services.ExitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	requireContains(t, out, "Broken: 1 content missing, 1 unresolved references")
	requireContains(t, out, "content missing")
	requireContains(t, out, "unresolved reference")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "rejected")
	requireContains(t, out, "check")
}

func TestCheckJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--json", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var report checkJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.OK || report.Titles != 1 || report.Menus != 1 || len(report.Faults) != 0 {
		t.Fatalf("unexpected report %#v", report)
	}

	out, _, err = runCLI(t, []string{"check", "--json", env.faultyPath}, env.configPath)
	if err == nil {
		t.Fatal("expected faulty check to fail")
	}
	report = checkJSON{}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode faulty report: %v\n%s", err, out)
	}
	if report.OK || len(report.Faults) != 2 {
		t.Fatalf("unexpected faulty report %#v", report)
	}
	kinds := map[string]bool{}
	for _, f := range report.Faults {
		kinds[f.Kind] = true
	}
	if !kinds["content missing"] || !kinds["unresolved reference"] {
		t.Fatalf("unexpected fault kinds %#v", report.Faults)
	}
}

func TestInspectPrintsAddressMap(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"inspect", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Address map")
	requireContains(t, out, "titleset 1 title 1")
	requireContains(t, out, "vmgm menu 1")
	requireContains(t, out, "feature")

	out, _, err = runCLI(t, []string{"inspect", "--json", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("inspect json: %v", err)
	}
	var rows []addressJSON
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	found := false
	for _, row := range rows {
		if row.Key == "feature" {
			found = true
			if row.Jump != "titleset 1 title 1" || row.Kind != "title" {
				t.Fatalf("unexpected feature row %#v", row)
			}
		}
	}
	if !found {
		t.Fatalf("feature row missing from %#v", rows)
	}
}

func TestAuthorRunsDvdauthor(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"author", env.projectPath}, env.configPath)
	if err != nil {
		t.Fatalf("author: %v", err)
	}
	dest := filepath.Join(env.cfg.Paths.OutputDir, "demo_disc")
	requireContains(t, out, "Authored Demo Disc into "+dest)
	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		t.Fatalf("expected destination directory, err=%v", err)
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var builds []buildJSON
	if err := json.Unmarshal([]byte(out), &builds); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(builds) != 1 || builds[0].Operation != "author" || builds[0].Status != "succeeded" {
		t.Fatalf("unexpected history %#v", builds)
	}
}

func TestAuthorRejectsMissingBinary(t *testing.T) {
	env := setupCLITestEnv(t, func(cfg *config.Config) {
		cfg.DVDAuthor.Binary = "definitely-not-dvdauthor"
	})

	_, _, err := runCLI(t, []string{"author", env.projectPath}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, err.Error(), "dvdauthor")
}

func TestAuthorRejectsStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"author", "-o", "-", env.projectPath}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHistoryShowAndPrune(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"build", env.projectPath}, env.configPath); err != nil {
		t.Fatalf("build: %v", err)
	}
	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var builds []buildJSON
	if err := json.Unmarshal([]byte(out), &builds); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("expected one build, got %d", len(builds))
	}

	out, _, err = runCLI(t, []string{"history", "show", builds[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Status:      succeeded")
	requireContains(t, out, "Project:     Demo Disc")

	_, _, err = runCLI(t, []string{"history", "show", "zzzz"}, env.configPath)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	out, _, err = runCLI(t, []string{"history", "prune", "--days", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, out, "Removed 1 builds")
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t, func(cfg *config.Config) {
		cfg.History.Enabled = false
	})

	if _, _, err := runCLI(t, []string{"build", env.projectPath}, env.configPath); err != nil {
		t.Fatalf("build without history: %v", err)
	}
	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if _, statErr := os.Stat(env.cfg.HistoryPath()); !os.IsNotExist(statErr) {
		t.Fatalf("expected no history database, stat err=%v", statErr)
	}
}

func TestPreflightCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err != nil {
		t.Fatalf("preflight: %v\n%s", err, out)
	}
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "dvdauthor:")
	requireContains(t, out, "All required checks passed")
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"--log-level", "loud", "check", env.projectPath}, env.configPath)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLogsShowsBuildLines(t *testing.T) {
	env := setupCLITestEnv(t, func(cfg *config.Config) {
		cfg.Logging.Level = "info"
		cfg.Logging.Format = "json"
	})

	if _, _, err := runCLI(t, []string{"build", env.projectPath}, env.configPath); err != nil {
		t.Fatalf("build: %v", err)
	}
	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var builds []buildJSON
	if err := json.Unmarshal([]byte(out), &builds); err != nil || len(builds) != 1 {
		t.Fatalf("decode history: %v %#v", err, builds)
	}

	out, _, err = runCLI(t, []string{"logs", "--build", builds[0].ID}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "document written")
	requireContains(t, out, builds[0].ID)

	out, _, err = runCLI(t, []string{"logs", "--build", "no-such-build"}, env.configPath)
	if err != nil {
		t.Fatalf("logs filter: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected no lines, got %q", out)
	}
}
