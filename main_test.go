package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emoji-engine/internal/config"
)

func TestRunHeadlessWritesDump(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	cfgPath := filepath.Join(tmp, "sandbox.toml")
	cfg := "[engine]\nframe_rate = 120\n\n[logging]\nfile = \"" + filepath.ToSlash(filepath.Join(tmp, "engine.log")) + "\"\n\n[arena]\nseed = 3\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvPath, cfgPath)

	dump := filepath.Join(tmp, "state.json")
	if err := run("", "", 3, dump, true); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatalf("dump not written: %v", err)
	}
	if !strings.Contains(string(data), `"systems"`) || !strings.Contains(string(data), "component.Position") {
		t.Errorf("unexpected dump: %.200s", data)
	}
	if _, err := os.Stat(filepath.Join(tmp, "emoji-engine", "runs.jsonl")); err != nil {
		t.Errorf("run stats not saved: %v", err)
	}
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	if err := run("", "heap", 1, "", true); err == nil {
		t.Fatal("expected an error for an unknown profile mode")
	}
}
