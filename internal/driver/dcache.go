package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"migralint/internal/snapshot"
	"migralint/internal/symbols"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит декодированные снапшоты по хешу содержимого файла.
// Экономит повторный JSON-декод на больших дампах между запусками.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached form of one decoded snapshot.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	SnapSchema int
	Producer   string
	Classes    []symbols.Class
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key snapshot.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "snaps" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "snaps", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key snapshot.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key snapshot.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// LoadThrough returns the decoded snapshot for path, via the cache when the
// content digest matches a prior decode. Cache failures fall back to a plain
// decode; they never fail the run.
func (c *DiskCache) LoadThrough(path string) (snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}
	key := snapshot.Digest(sha256.Sum256(data))

	var payload DiskPayload
	if ok, err := c.Get(key, &payload); err == nil && ok {
		return snapshot.Snapshot{
			Schema:   payload.SnapSchema,
			Producer: payload.Producer,
			Classes:  payload.Classes,
			Digest:   key,
		}, nil
	}

	snap, err := snapshot.Decode(data)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	_ = c.Put(key, &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		SnapSchema: snap.Schema,
		Producer:   snap.Producer,
		Classes:    snap.Classes,
	})
	return snap, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
