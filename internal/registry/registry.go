// Package registry is the durable local store of launched machines:
// one JSON file per user-chosen hostname. The machine ID inside each
// record is the secret capability token for the machine, so the
// directory and files are owner-only.
//
// Storage location follows privilege: /etc/vmspawn for root,
// ~/.vmspawn otherwise.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmspawn/vmspawn/internal/domain"
)

const (
	systemDir = "/etc/vmspawn"
	userDir   = ".vmspawn"

	dirMode  = 0o700
	fileMode = 0o600
)

// Registry reads and writes machine records under a single directory.
type Registry struct {
	dir string
}

// DefaultDir returns the record directory for the current privilege
// level.
func DefaultDir() (string, error) {
	if os.Geteuid() == 0 {
		return systemDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("registry: unable to determine home directory: %w", err)
	}
	return filepath.Join(home, userDir), nil
}

// Open returns a Registry at the default directory.
func Open() (*Registry, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir), nil
}

// OpenAt returns a Registry rooted at dir. The directory is created
// lazily on first write.
func OpenAt(dir string) *Registry {
	return &Registry{dir: dir}
}

// Dir returns the directory this registry stores records in.
func (r *Registry) Dir() string {
	return r.dir
}

func (r *Registry) path(hostname string) string {
	return filepath.Join(r.dir, hostname+".json")
}

// Exists reports whether a record exists for the hostname.
func (r *Registry) Exists(hostname string) bool {
	_, err := os.Stat(r.path(hostname))
	return err == nil
}

// Create writes a new record. It fails with ErrAlreadyExists if a
// record for the hostname is already present; launch must never
// clobber an existing machine's secret.
func (r *Registry) Create(m *domain.Machine) error {
	return r.write(m, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

// Overwrite replaces an existing record. Only topup uses this, to
// update the expiration of a machine it just read.
func (r *Registry) Overwrite(m *domain.Machine) error {
	return r.write(m, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

func (r *Registry) write(m *domain.Machine, flags int) error {
	if m.Hostname == "" {
		return fmt.Errorf("%w: record has no hostname", domain.ErrValidation)
	}

	if err := os.MkdirAll(r.dir, dirMode); err != nil {
		return fmt.Errorf("registry: failed to create directory %s: %w", r.dir, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("registry: failed to marshal record: %w", err)
	}
	data = append(data, '\n')

	path := r.path(m.Hostname)
	f, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, m.Hostname)
		}
		return fmt.Errorf("registry: failed to open %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("registry: failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Read loads the record for a hostname. It fails with ErrNotFound when
// absent and ErrCorruptRecord when the embedded hostname does not
// match the filename key.
func (r *Registry) Read(hostname string) (*domain.Machine, error) {
	path := r.path(hostname)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, hostname)
		}
		return nil, fmt.Errorf("registry: failed to read %s: %w", path, err)
	}

	var m domain.Machine
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptRecord, hostname, err)
	}
	if m.Hostname != hostname {
		return nil, fmt.Errorf("%w: %s: embedded hostname %q does not match filename", domain.ErrCorruptRecord, hostname, m.Hostname)
	}
	return &m, nil
}

// Remove deletes the record for a hostname. The remote machine is
// untouched.
func (r *Registry) Remove(hostname string) error {
	err := os.Remove(r.path(hostname))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, hostname)
	}
	return err
}

// List returns the hostnames of all stored records, sorted.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: failed to list %s: %w", r.dir, err)
	}

	var hostnames []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		hostnames = append(hostnames, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(hostnames)
	return hostnames, nil
}
