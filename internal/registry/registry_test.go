package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vmspawn/vmspawn/internal/domain"
)

func testMachine(hostname string) *domain.Machine {
	return &domain.Machine{
		Hostname:    hostname,
		MachineID:   "ab0c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c",
		Host:        "host-01",
		APIEndpoint: "https://api.vmspawn.net",
		Expiration:  1767225600,
	}
}

func TestCreateAndRead(t *testing.T) {
	r := OpenAt(t.TempDir())

	want := testMachine("web-01")
	if err := r.Create(want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := r.Read("web-01")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRefusesDuplicate(t *testing.T) {
	r := OpenAt(t.TempDir())

	if err := r.Create(testMachine("web-01")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	err := r.Create(testMachine("web-01"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestOverwriteUpdatesExpiration(t *testing.T) {
	r := OpenAt(t.TempDir())

	m := testMachine("web-01")
	if err := r.Create(m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	m.Expiration += 86400 * 7
	if err := r.Overwrite(m); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	got, err := r.Read("web-01")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Expiration != m.Expiration {
		t.Errorf("expected expiration %d, got %d", m.Expiration, got.Expiration)
	}
}

func TestReadMissing(t *testing.T) {
	r := OpenAt(t.TempDir())

	_, err := r.Read("nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadCorruptJSON(t *testing.T) {
	dir := t.TempDir()
	r := OpenAt(dir)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := r.Read("bad")
	if !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestReadHostnameMismatch(t *testing.T) {
	dir := t.TempDir()
	r := OpenAt(dir)

	if err := r.Create(testMachine("web-01")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := os.Rename(filepath.Join(dir, "web-01.json"), filepath.Join(dir, "web-02.json")); err != nil {
		t.Fatal(err)
	}

	_, err := r.Read("web-02")
	if !errors.Is(err, domain.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestFilePermissions(t *testing.T) {
	dir := t.TempDir()
	r := OpenAt(dir)

	if err := r.Create(testMachine("web-01")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "web-01.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected file mode 0600, got %o", perm)
	}
}

func TestListAndRemove(t *testing.T) {
	r := OpenAt(t.TempDir())

	for _, hostname := range []string{"web-02", "web-01", "db-01"} {
		if err := r.Create(testMachine(hostname)); err != nil {
			t.Fatalf("Create %s failed: %v", hostname, err)
		}
	}

	got, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"db-01", "web-01", "web-02"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hostnames mismatch (-want +got):\n%s", diff)
	}

	if err := r.Remove("web-01"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if r.Exists("web-01") {
		t.Error("expected record to be gone after Remove")
	}
	if err := r.Remove("web-01"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second Remove, got %v", err)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	r := OpenAt(filepath.Join(t.TempDir(), "missing"))

	got, err := r.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %v", got)
	}
}
