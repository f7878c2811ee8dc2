package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempKeystore(t *testing.T) *FileKeystore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.enc")
	return NewFileKeystoreWithKey(path, []byte("test-master-key"))
}

func TestSetGetRoundTrip(t *testing.T) {
	ks := tempKeystore(t)

	if err := ks.Set(DefaultKeyName, "ra-secret-123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := ks.Get(DefaultKeyName)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "ra-secret-123" {
		t.Errorf("Get() = %q, want ra-secret-123", value)
	}
}

func TestGetMissingKey(t *testing.T) {
	ks := tempKeystore(t)

	_, err := ks.Get("nope")
	var notFound *ErrKeyNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Get() error = %v, want *ErrKeyNotFound", err)
	}
	if notFound.Name != "nope" {
		t.Errorf("Name = %q, want nope", notFound.Name)
	}
}

func TestDelete(t *testing.T) {
	ks := tempKeystore(t)

	if err := ks.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := ks.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ks.Get("a"); err == nil {
		t.Error("Get() after Delete() should fail")
	}

	var notFound *ErrKeyNotFound
	if err := ks.Delete("a"); !errors.As(err, &notFound) {
		t.Errorf("second Delete() error = %v, want *ErrKeyNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	ks := tempKeystore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := ks.Set(name, "v"); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ks.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFileIsEncrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks := NewFileKeystoreWithKey(path, []byte("master"))

	if err := ks.Set(DefaultKeyName, "ra-visible-secret"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "ra-visible-secret") {
		t.Error("key material stored in plaintext")
	}
	if !strings.HasPrefix(string(raw), magicHeader) {
		t.Error("file missing magic header")
	}
}

func TestWrongMasterKeyFailsToOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	ks := NewFileKeystoreWithKey(path, []byte("right"))
	if err := ks.Set("a", "1"); err != nil {
		t.Fatal(err)
	}

	wrong := NewFileKeystoreWithKey(path, []byte("wrong"))
	if _, err := wrong.Get("a"); err == nil {
		t.Error("Get() with wrong master key should fail")
	}
}

func TestCorruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.enc")
	if err := os.WriteFile(path, []byte("garbage data here"), 0600); err != nil {
		t.Fatal(err)
	}

	ks := NewFileKeystoreWithKey(path, []byte("master"))
	if _, err := ks.Get("a"); err == nil {
		t.Error("Get() on corrupt file should fail")
	}
}
