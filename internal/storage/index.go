package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes used in the accelerating index. The filesystem, not this
// database, is authoritative for blob and manifest content: every key here
// is either rebuildable by directory scan or purely additive audit trail.
const (
	prefixRepo  = "r:"  // r:<repo> -> RFC3339 first-seen timestamp
	prefixEvent = "ev:" // ev:<reverseTimestamp> -> encoded audit event
)

// Index is a BadgerDB-backed accelerating index over the repository
// catalog and the audit log. It is never consulted to decide whether a
// blob or manifest exists; NoteRepository is only called after the
// corresponding filesystem write has already succeeded.
type Index struct {
	db *badger.DB
}

// OpenIndex opens (creating if necessary) the index database rooted under
// root/index.
func OpenIndex(root string) (*Index, error) {
	dbPath := filepath.Join(root, "index")

	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening index db: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// NoteRepository records repo as known, if it isn't already. Call this
// only after a manifest or blob write for repo has landed on disk.
func (idx *Index) NoteRepository(repo string) error {
	key := []byte(prefixRepo + repo)
	return idx.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

// ListRepositories returns repository names lexicographically greater
// than last. n < 0 means no limit was requested; n == 0 truncates to an
// empty result, matching a client that explicitly asked for zero entries.
func (idx *Index) ListRepositories(last string, n int) ([]string, error) {
	var names []string
	err := idx.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek([]byte(prefixRepo)); it.ValidForPrefix([]byte(prefixRepo)); it.Next() {
			name := strings.TrimPrefix(string(it.Item().Key()), prefixRepo)
			if last != "" && name <= last {
				continue
			}
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	if n >= 0 && len(names) > n {
		names = names[:n]
	}
	return names, nil
}

// PutRaw stores an opaque value under key.
func (idx *Index) PutRaw(key string, data []byte) error {
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ScanPrefixOrdered returns the values of every key under prefix, in
// key order, up to limit entries (0 = no limit). Reverse-timestamp key
// encoding makes key order equivalent to newest-first.
func (idx *Index) ScanPrefixOrdered(prefix string, limit int) ([][]byte, error) {
	var values [][]byte
	err := idx.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if limit > 0 && len(values) >= limit {
				break
			}
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	return values, err
}
