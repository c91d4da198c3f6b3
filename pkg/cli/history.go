package cli

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	bolt "go.etcd.io/bbolt"
)

var historyBucket = []byte("history")

// historyLimit caps how many entries are preloaded into the prompt.
const historyLimit = 1000

// History persists dispatched statements across interactive sessions in a
// small bbolt database under the user state directory.
type History struct {
	db *bolt.DB
}

// OpenHistory opens (or creates) the history database. The short open
// timeout keeps a second concurrent session from hanging on the file lock.
func OpenHistory() (*History, error) {
	dir := filepath.Join(xdg.StateHome, "firebolt-cli")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "history.db"), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &History{db: db}, nil
}

// openHistoryAt is the test seam for a custom database path.
func openHistoryAt(path string) (*History, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &History{db: db}, nil
}

// Entries returns the most recent statements in insertion order.
func (h *History) Entries() []string {
	var entries []string
	h.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(historyBucket).ForEach(func(k, v []byte) error {
			entries = append(entries, string(v))
			return nil
		})
	})

	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	return entries
}

// Append stores one dispatched statement.
func (h *History) Append(stmt string) error {
	return h.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(historyBucket)
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return bucket.Put(key, []byte(stmt))
	})
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
