package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Mode != "lowkey" {
		t.Errorf("expected mode 'lowkey', got %q", cfg.Mode)
	}
	if len(cfg.Radar.Feeds) == 0 {
		t.Error("expected radar feeds to be populated")
	}
	if cfg.Generation.APIKeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("unexpected generation key env %q", cfg.Generation.APIKeyEnv)
	}
	if !cfg.Search.Enabled {
		t.Error("expected search enabled by default")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
mode: hype
generation:
  model: claude-opus-4-20250514
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Mode != "hype" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.Generation.Model != "claude-opus-4-20250514" {
		t.Errorf("model = %q", cfg.Generation.Model)
	}
	// Unset fields keep their defaults.
	if cfg.Generation.MaxTokens != 8192 {
		t.Errorf("max tokens = %d", cfg.Generation.MaxTokens)
	}
	if cfg.Search.Model != "sonar" {
		t.Errorf("search model = %q", cfg.Search.Model)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := parse([]byte("mode: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: hype"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveConfigPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("resolved %q, want %q", got, path)
	}

	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit path")
	}
}

func TestGetDataDirOverride(t *testing.T) {
	cfg := &Config{}
	if cfg.GetDataDir() == "" {
		t.Error("expected XDG default")
	}

	cfg.Output.DataDir = "/tmp/gfpd-data"
	if cfg.GetDataDir() != "/tmp/gfpd-data" {
		t.Errorf("got %q", cfg.GetDataDir())
	}
}

func TestGetKnowledgeDirOverride(t *testing.T) {
	cfg := &Config{}
	if cfg.GetKnowledgeDir() == "" {
		t.Error("expected default knowledge dir")
	}

	cfg.Knowledge.Dir = "/tmp/kb"
	if cfg.GetKnowledgeDir() != "/tmp/kb" {
		t.Errorf("got %q", cfg.GetKnowledgeDir())
	}
}
