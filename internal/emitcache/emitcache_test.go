package emitcache

import (
	"path/filepath"
	"testing"

	"github.com/tsoniclang/tsbindgen/internal/diagnostics"
)

func TestKeyDeterministic(t *testing.T) {
	k1 := Key([]byte("policy-a"), "fingerprint-a")
	k2 := Key([]byte("policy-a"), "fingerprint-a")
	if k1 != k2 {
		t.Fatalf("Key not deterministic: %q vs %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Fatalf("expected a 16-char key, got %q", k1)
	}
}

func TestKeyDiffersOnInput(t *testing.T) {
	base := Key([]byte("policy-a"), "fingerprint-a")
	if Key([]byte("policy-b"), "fingerprint-a") == base {
		t.Fatal("changing policy bytes should change the key")
	}
	if Key([]byte("policy-a"), "fingerprint-b") == base {
		t.Fatal("changing the fingerprint should change the key")
	}
}

func TestStoreAndLookup(t *testing.T) {
	dir := t.TempDir()
	c := New(filepath.Join(dir, "cache"))

	key := Key([]byte("p"), "f")
	if _, found := c.Lookup(key); found {
		t.Fatal("expected a miss before any Store")
	}

	entry := Entry{
		RunID:        "run-1",
		CountsByCode: map[diagnostics.Code]int{diagnostics.CodeExternalReference: 2},
		Failed:       false,
	}
	if err := c.Store(key, entry); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, found := c.Lookup(key)
	if !found {
		t.Fatal("expected a hit after Store")
	}
	if got.RunID != entry.RunID || got.Failed != entry.Failed {
		t.Fatalf("round-tripped entry mismatch: got %+v, want %+v", got, entry)
	}
	if got.CountsByCode[diagnostics.CodeExternalReference] != 2 {
		t.Fatalf("CountsByCode lost in round trip: %+v", got.CountsByCode)
	}
}

func TestClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := New(dir)
	key := Key([]byte("p"), "f")
	if err := c.Store(key, Entry{RunID: "r"}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := c.Clean(); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if _, found := c.Lookup(key); found {
		t.Fatal("expected a miss after Clean")
	}
}
