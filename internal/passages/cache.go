package passages

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"
)

const passagePrefix = "passage:"

// cachedPassage wraps a fetched passage with cache info.
type cachedPassage struct {
	Passage   Passage   `json:"passage"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache stores fetched passages in a Badger database. Entries expire
// after the configured TTL; a zero TTL keeps them forever.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// OpenCache opens (or creates) the passage cache at path.
func OpenCache(path string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open passage cache: %w", err)
	}

	logger.Debug("passage cache opened", "path", path, "ttl", ttl)

	return &Cache{
		db:     db,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func cacheKey(collection, page, lang string) []byte {
	return fmt.Appendf(nil, "%s%s:%s:%s", passagePrefix, collection, page, lang)
}

// Get retrieves a cached passage. A miss, an expired entry, and a read
// failure all report false; the cache never fails a lookup.
func (c *Cache) Get(collection, page, lang string) (*Passage, bool) {
	key := cacheKey(collection, page, lang)

	var cached cachedPassage
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cached)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("passage cache read failed", "error", err)
		return nil, false
	}

	if c.ttl > 0 && time.Since(cached.FetchedAt) > c.ttl {
		return nil, false
	}

	return &cached.Passage, true
}

// Put stores a passage under its collection, page, and language.
func (c *Cache) Put(p *Passage) error {
	cached := cachedPassage{
		Passage:   *p,
		FetchedAt: time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal cached passage: %w", err)
	}

	key := cacheKey(p.Collection, p.Page, p.Language)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}
