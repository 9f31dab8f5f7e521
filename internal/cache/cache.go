package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

// DiskCache keeps extracted server binaries in a flat directory, one file
// per (version, arch) pair.
type DiskCache struct {
	sync.RWMutex
	dir string
}

func New(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) PathFor(asset domain.Asset) string {
	c.RLock()
	defer c.RUnlock()
	return filepath.Join(c.dir, asset.Filename)
}

func (c *DiskCache) Has(asset domain.Asset) bool {
	c.RLock()
	defer c.RUnlock()
	_, err := os.Stat(filepath.Join(c.dir, asset.Filename))
	return err == nil
}

// Store moves src into the cache, overwriting any previous entry for the
// same asset. Forced re-downloads rely on the silent overwrite.
func (c *DiskCache) Store(asset domain.Asset, src string) (string, error) {
	c.Lock()
	defer c.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}

	dst := filepath.Join(c.dir, asset.Filename)
	if err := os.Rename(src, dst); err != nil {
		return "", err
	}

	return dst, nil
}

func (c *DiskCache) Size() (int64, error) {
	c.RLock()
	defer c.RUnlock()

	var size int64

	err := filepath.Walk(c.dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})

	return size, err
}

func (c *DiskCache) Clear() error {
	c.Lock()
	defer c.Unlock()

	return os.RemoveAll(c.dir)
}
