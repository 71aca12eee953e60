package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docullim.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))

	if cfg.Model != "gpt-4" {
		t.Fatalf("expected default model gpt-4, got %q", cfg.Model)
	}
	if cfg.MaxConcurrency != 1 {
		t.Fatalf("expected default concurrency 1, got %d", cfg.MaxConcurrency)
	}
	if cfg.PromptFor("") == "" {
		t.Fatalf("expected a built-in default prompt")
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `{
  "model": "gpt-4o",
  "max_concurrency": 4,
  "prompts": {"default": "P", "api": "Q"}
}`)
	cfg := Load(path)

	if cfg.Model != "gpt-4o" {
		t.Fatalf("expected model gpt-4o, got %q", cfg.Model)
	}
	if cfg.MaxConcurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.MaxConcurrency)
	}
	if got := cfg.PromptFor("api"); got != "Q" {
		t.Fatalf("expected tagged prompt Q, got %q", got)
	}
	if got := cfg.PromptFor(""); got != "P" {
		t.Fatalf("expected default prompt P, got %q", got)
	}
	if got := cfg.PromptFor("unknown"); got != "P" {
		t.Fatalf("expected unknown tag to fall back to default, got %q", got)
	}
}

func TestLoadKeepsDefaultPromptWhenFileOmitsIt(t *testing.T) {
	path := writeConfig(t, `{"prompts": {"api": "Q"}}`)
	cfg := Load(path)

	if cfg.PromptFor("api") != "Q" {
		t.Fatalf("expected tagged prompt to survive")
	}
	if cfg.PromptFor("") == "" {
		t.Fatalf("expected built-in default prompt to be restored")
	}
}

func TestLoadMalformedFileFallsBack(t *testing.T) {
	path := writeConfig(t, `{"model": `)
	cfg := Load(path)

	if cfg.Model != "gpt-4" {
		t.Fatalf("expected defaults after malformed config, got %q", cfg.Model)
	}
}

func TestLoadRejectsNonPositiveConcurrency(t *testing.T) {
	path := writeConfig(t, `{"max_concurrency": 0}`)
	cfg := Load(path)

	if cfg.MaxConcurrency != 1 {
		t.Fatalf("expected concurrency floor of 1, got %d", cfg.MaxConcurrency)
	}
}
