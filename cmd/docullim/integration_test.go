package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shrynx/docullim/internal/cli"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// runCommand executes the root command and captures the stdout report.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	cmd := cli.NewRootCommand("test")
	cmd.SetArgs(args)
	runErr := cmd.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return buf.String(), runErr
}

func TestRunWithoutAPIKeyReportsInlineErrors(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)
	t.Setenv("OPENAI_API_KEY", "")

	mustWriteFile(t, filepath.Join(root, "sample.py"), `@docullim
def greet(name):
    return "Hello " + name
`)

	out, err := runCommand(t, "sample.py")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var report map[string]map[string]string
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("expected JSON report, got %q: %v", out, err)
	}
	doc := report["sample.py"]["greet"]
	if !strings.Contains(doc, "Error generating documentation") {
		t.Fatalf("expected inline generation error, got %q", doc)
	}

	// The failure text is cached like any annotation; a second run must
	// return the same report from the cache.
	again, err := runCommand(t, "sample.py")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if again != out {
		t.Fatalf("expected identical report on cache hit, got:\n%s\nvs:\n%s", out, again)
	}
}

func TestRunWithNoMatchingFilesFails(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := runCommand(t, "missing.py"); err == nil {
		t.Fatalf("expected an error when no files resolve")
	}
}
