package client

import (
	"os"
	"path/filepath"
	"testing"

	"pims/auth"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	session, err := store.Read()
	if err != nil {
		t.Fatalf("read before save: %v", err)
	}
	if !session.Empty() {
		t.Fatalf("expected empty session, got %+v", session)
	}

	saved := Session{Token: "signed-token", Role: auth.RoleCompany}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	session, err = store.Read()
	if err != nil {
		t.Fatalf("read after save: %v", err)
	}
	if session != saved {
		t.Fatalf("expected %+v, got %+v", saved, session)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	session, err = store.Read()
	if err != nil {
		t.Fatalf("read after clear: %v", err)
	}
	if !session.Empty() {
		t.Fatalf("expected empty session after clear, got %+v", session)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStore_CorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	session, err := NewFileStore(path).Read()
	if err != nil {
		t.Fatalf("read corrupt file: %v", err)
	}
	if !session.Empty() {
		t.Fatalf("corrupt session file must read as empty, got %+v", session)
	}
}
