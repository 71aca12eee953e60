package cache

import "testing"

func TestKeyIsDeterministic(t *testing.T) {
	first := Key("def f():\n    return 1\n", "prompt")
	second := Key("def f():\n    return 1\n", "prompt")
	if first != second {
		t.Fatalf("expected identical keys, got %s and %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected hex sha256 digest, got %q", first)
	}
}

func TestKeyDependsOnPrompt(t *testing.T) {
	code := "def f():\n    return 1\n"
	if Key(code, "prompt a") == Key(code, "prompt b") {
		t.Fatalf("expected different prompts to produce different keys")
	}
}

func TestKeyDependsOnSource(t *testing.T) {
	if Key("def f(): pass", "p") == Key("def g(): pass", "p") {
		t.Fatalf("expected different sources to produce different keys")
	}
}

func TestKeySeparatorIsUnambiguous(t *testing.T) {
	// Moving bytes across the source/prompt boundary must change the key.
	if Key("ab", "c") == Key("a", "bc") {
		t.Fatalf("expected boundary shift to change the key")
	}
}
