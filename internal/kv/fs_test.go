package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func tempDataDir(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestSetAndGet(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()
	content := []byte(`[{"id":"1","name":"Squat","isCustom":false}]`)
	if err := s.Set(ctx, "gym-tracker-exercises", content); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "gym-tracker-exercises")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: key reported absent")
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), "gym-tracker-exercises.json")); err != nil {
		t.Errorf("backing file missing: %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := tempDataDir(t)
	got, ok, err := s.Get(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || got != nil {
		t.Errorf("missing key: ok=%v value=%q", ok, got)
	}
}

func TestDelete(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()
	_ = s.Set(ctx, "del", []byte("bye"))
	if err := s.Delete(ctx, "del"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "del"); ok {
		t.Error("key still present after delete")
	}
	if err := s.Delete(ctx, "del"); err != nil {
		t.Errorf("second delete should be a no-op: %v", err)
	}
}

func TestInvalidKeysRejected(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()

	cases := []string{
		"",
		"../../etc/passwd",
		"../outside",
		"/etc/shadow",
		"a/b",
		".hidden",
	}
	for _, k := range cases {
		if _, _, err := s.Get(ctx, k); err == nil {
			t.Errorf("expected error for key %q", k)
		}
		if err := s.Set(ctx, k, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", k)
		}
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()
	_ = s.Set(ctx, "atomic", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Set(ctx, "atomic", updated); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _, _ := s.Get(ctx, "atomic")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, tmpFilePrefix+"*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestOwnState(t *testing.T) {
	s := tempDataDir(t)
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte("mine"))

	if !s.ownState("k", []byte("mine"), true) {
		t.Error("own write not recognised")
	}
	if s.ownState("k", []byte("theirs"), true) {
		t.Error("foreign content treated as own write")
	}
	if s.ownState("unknown", []byte("x"), true) {
		t.Error("never-written key treated as own write")
	}

	_ = s.Delete(ctx, "k")
	if !s.ownState("k", nil, false) {
		t.Error("own delete not recognised")
	}
}

func TestKeyFromFile(t *testing.T) {
	cases := map[string]struct {
		key string
		ok  bool
	}{
		"/data/gym-tracker-records.json": {"gym-tracker-records", true},
		"/data/.maxlift-tmp-123":         {"", false},
		"/data/notes.txt":                {"", false},
	}
	for name, want := range cases {
		key, ok := keyFromFile(name)
		if key != want.key || ok != want.ok {
			t.Errorf("keyFromFile(%q) = %q, %v; want %q, %v", name, key, ok, want.key, want.ok)
		}
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/maxlift-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "maxlift-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
