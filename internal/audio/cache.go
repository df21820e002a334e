package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// cacheNamespace scopes the deterministic cache keys.
var cacheNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/f3rmion/braille/speech"))

// SpeechCache stores synthesized speech keyed by (text, lang). It is owned
// by the caller and passed by reference; nothing in this package holds a
// cache of its own.
type SpeechCache struct {
	db  *badger.DB
	ttl time.Duration
}

// CacheStats summarizes the cache contents.
type CacheStats struct {
	Entries int
	Bytes   int64 // on-disk size, LSM tree plus value log
}

// OpenSpeechCache opens or creates a cache in dir. Entries expire after ttl;
// zero keeps them until evicted.
func OpenSpeechCache(dir string, ttl time.Duration) (*SpeechCache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening speech cache: %w", err)
	}
	return &SpeechCache{db: db, ttl: ttl}, nil
}

// OpenMemoryCache returns a cache that lives only as long as the process.
func OpenMemoryCache(ttl time.Duration) (*SpeechCache, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening memory cache: %w", err)
	}
	return &SpeechCache{db: db, ttl: ttl}, nil
}

// CacheKey returns the key for (text, lang).
func CacheKey(text, lang string) []byte {
	id := uuid.NewSHA1(cacheNamespace, []byte(lang+"_"+text))
	return id[:]
}

// Get returns the cached audio for (text, lang).
func (c *SpeechCache) Get(text, lang string) ([]byte, bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(CacheKey(text, lang))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading speech cache: %w", err)
	}
	return data, true, nil
}

// Put stores audio for (text, lang).
func (c *SpeechCache) Put(text, lang string, data []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(CacheKey(text, lang), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("writing speech cache: %w", err)
	}
	return nil
}

// Evict removes the entry for (text, lang), if any.
func (c *SpeechCache) Evict(text, lang string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(CacheKey(text, lang))
	})
	if err != nil {
		return fmt.Errorf("evicting from speech cache: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *SpeechCache) Clear() error {
	if err := c.db.DropAll(); err != nil {
		return fmt.Errorf("clearing speech cache: %w", err)
	}
	return nil
}

// Stats counts live entries and reports the on-disk size.
func (c *SpeechCache) Stats() (CacheStats, error) {
	var s CacheStats
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			s.Entries++
		}
		return nil
	})
	if err != nil {
		return CacheStats{}, fmt.Errorf("reading speech cache: %w", err)
	}
	lsm, vlog := c.db.Size()
	s.Bytes = lsm + vlog
	return s, nil
}

// Close flushes and closes the cache.
func (c *SpeechCache) Close() error {
	return c.db.Close()
}
