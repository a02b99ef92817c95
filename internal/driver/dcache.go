package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"setslice/internal/ast"
	"setslice/internal/project"
)

// CacheSchemaVersion is bumped whenever ProgramPayload or the AST layout
// changes; old entries then miss.
const CacheSchemaVersion uint16 = 1

const (
	cacheSubdir = "progs"
	cacheExt    = ".mp"
)

// DiskCache хранит разобранные программы по хешу содержимого файла.
// A nil *DiskCache is a valid cache that never hits.
type DiskCache struct {
	mu   sync.RWMutex
	root string
}

// ProgramPayload is one cache entry.
type ProgramPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	Program     *ast.Program
}

// OpenDiskCache opens the cache of app under $XDG_CACHE_HOME (or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, cacheSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{root: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.root }

func (c *DiskCache) entryPath(key project.Digest) string {
	return filepath.Join(c.root, cacheSubdir, key.Hex()+cacheExt)
}

// Put writes payload under key. Readers never observe a partial entry.
func (c *DiskCache) Put(key project.Digest, payload *ProgramPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", payload.Path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entryPath(key), data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get decodes the entry for key into out. A missing entry is a miss, not
// an error.
func (c *DiskCache) Get(key project.Digest, out *ProgramPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()

	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every entry and leaves an empty cache behind.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// сначала уводим каталог в сторону, чтобы параллельный процесс не читал полуудалённое
	graveyard := c.root + ".old-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	err := os.Rename(c.root, graveyard)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := os.RemoveAll(graveyard); err != nil {
			return err
		}
	}
	return os.MkdirAll(filepath.Join(c.root, cacheSubdir), 0o755)
}
