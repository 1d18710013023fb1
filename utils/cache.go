package utils

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/setanarut/termscheme"
)

// cacheVersion is bumped whenever the generated schemes change for the same
// input, so stale entries are not read back.
const cacheVersion = "1"

// Cache stores generated schemes as JSON files keyed by image content and options.
type Cache struct {
	Dir string
}

type cacheEntry struct {
	Fallback bool              `json:"fallback"`
	Scheme   termscheme.Colors `json:"scheme"`
}

// NewCache creates dir, or <user cache dir>/termscheme when dir is empty.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
		dir = filepath.Join(base, "termscheme")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{Dir: dir}, nil
}

// Key hashes the image buffer together with everything that changes the
// resulting scheme.
func Key(data []byte, backend Backend, opt termscheme.Options) string {
	h := xxhash.New()
	h.Write(data)
	fmt.Fprintf(h, "|%s|%s|%s|%s|%d|%t|%g|%t",
		backend, opt.ColorSpace, opt.Palette, opt.Generator,
		opt.Threshold, opt.Dynamic, opt.Saturation, opt.CheckContrast)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key+"_"+cacheVersion+".json")
}

// Load returns the cached scheme for key. ok is false on a miss.
func (c *Cache) Load(key string) (cols termscheme.Colors, fallback bool, ok bool, err error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return termscheme.Colors{}, false, false, nil
	}
	if err != nil {
		return termscheme.Colors{}, false, false, fmt.Errorf("read cache: %w", err)
	}
	var e cacheEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return termscheme.Colors{}, false, false, fmt.Errorf("decode cache %s: %w", key, err)
	}
	return e.Scheme, e.Fallback, true, nil
}

func (c *Cache) Store(key string, cols termscheme.Colors, fallback bool) error {
	data, err := json.MarshalIndent(cacheEntry{Fallback: fallback, Scheme: cols}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
