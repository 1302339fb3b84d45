package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/userhubapp/userhub/internal/config"
)

// Disk stores opaque byte objects under string keys.
//
// Keys may contain "/" separators; intermediate directories are
// created on write. The Disk performs no locking of its own; the
// underlying filesystem serializes concurrent writes to distinct keys.
type Disk struct {
	fs billy.Filesystem
}

// NewDisk constructs a Disk from storage config.
//
// For the "fs" driver the root location is created if it does not
// exist, so a fresh deployment can write immediately.
func NewDisk(cfg config.StorageConfig) (*Disk, error) {
	switch cfg.Driver {
	case "fs":
		location := cfg.Location
		if location == "" {
			location = "storage"
		}
		if err := os.MkdirAll(location, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage root %q: %w", location, err)
		}
		return &Disk{fs: osfs.New(location)}, nil

	case "memory":
		return NewMemoryDisk(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewMemoryDisk returns a Disk backed by an in-memory filesystem.
func NewMemoryDisk() *Disk {
	return &Disk{fs: memfs.New()}
}

// Put writes data under key, creating parent directories as needed.
func (d *Disk) Put(key string, data []byte) error {
	if dir := filepath.Dir(key); dir != "." {
		if err := d.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: mkdir for %q: %w", key, err)
		}
	}
	if err := util.WriteFile(d.fs, key, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}

// Get reads the object stored under key.
func (d *Disk) Get(key string) ([]byte, error) {
	data, err := util.ReadFile(d.fs, key)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return data, nil
}

// Exists reports whether an object is stored under key.
func (d *Disk) Exists(key string) (bool, error) {
	_, err := d.fs.Stat(key)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("storage: stat %q: %w", key, err)
	}
}

// Ping verifies the backing filesystem is reachable. Used by the
// health endpoint.
func (d *Disk) Ping() error {
	if _, err := d.fs.ReadDir("/"); err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	return nil
}
