package storage

import (
	"io"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	key := "transcripts/2026-08-31/abc.json"
	if _, err := s.Put(key, strings.NewReader(`{"model":"gpt-4o"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != `{"model":"gpt-4o"}` {
		t.Errorf("got %q", b)
	}
}

func TestFSStoreRejectsBadKeys(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	for _, key := range []string{"", "../outside", "a/../../outside", "/etc/passwd"} {
		if _, err := s.Put(key, strings.NewReader("x")); err == nil {
			t.Errorf("Put(%q) accepted a key outside the store", key)
		}
		if _, err := s.Get(key); err == nil {
			t.Errorf("Get(%q) accepted a key outside the store", key)
		}
	}
}
