// Package durakv implements an embedded key/value store: a write-ahead
// log for durability, an in-memory ordered table for serving reads, and a
// block builder for turning that table into a sorted, prefix-compressed
// on-disk block.
//
// Reference: this package's write-ahead log and open-time recovery follow
// the same structure as RocksDB's DB — a log replayed into a memtable at
// Open — scoped down to a single log file with no compaction, manifest,
// or multi-version concurrency control.
package durakv

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/durakv/durakv/internal/logging"
	"github.com/durakv/durakv/internal/memtable"
	"github.com/durakv/durakv/internal/vfs"
	"github.com/durakv/durakv/internal/wal"
)

// Common errors returned by Db operations.
var (
	ErrDBClosed   = errors.New("durakv: database is closed")
	ErrNotFound   = errors.New("durakv: key not found")
	ErrCorruption = errors.New("durakv: corruption detected")
)

// walFileName is the single log file every Db opens beneath its
// directory. The log is never rotated, so there is only ever this one
// file for the database's lifetime.
const walFileName = "wal.log"

// Db is an embedded key/value store backed by a single write-ahead log
// and an in-memory ordered table.
type Db struct {
	// mu serializes Set against itself so that a write's WAL append and its
	// MemTable update happen as one atomic step: without it, two
	// concurrent Sets could take the wal.Wal lock and the memtable.MemTable
	// lock in opposite orders and leave the log and the table disagreeing
	// about which write happened last.
	mu sync.Mutex

	vfs    *vfs.Vfs
	file   *vfs.VFile
	wal    *wal.Wal
	mem    *memtable.MemTable
	logger Logger

	closed bool
}

// Open opens (or creates, if opts.CreateIfMissing) the database directory
// at path and replays its log into memory.
func Open(path string, opts *Options) (*Db, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := logging.OrDefault(opts.Logger)

	if !opts.CreateIfMissing {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}

	v, err := vfs.New(path)
	if err != nil {
		return nil, err
	}

	f, err := v.Open(walFileName)
	if err != nil {
		return nil, err
	}

	mem := memtable.New(opts.Comparator)
	entries, err := wal.Replay(f, logger)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, e := range entries {
		mem.Set(e.Key, e.Value)
	}
	logger.Infof("%srecovered %d entries from %s", logging.NSDB, len(entries), filepath.Join(path, walFileName))

	w, err := wal.Open(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Db{vfs: v, file: f, wal: w, mem: mem, logger: logger}, nil
}

// Get returns the value stored for key, if any.
func (db *Db) Get(key []byte) ([]byte, bool) {
	return db.mem.Get(key)
}

// Set writes key/value to the log and then to the in-memory table. Set
// always returns either nil or an error: unlike some KV stores, it never
// reports the value a key previously held.
func (db *Db) Set(opts *WriteOptions, key, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDBClosed
	}
	if opts == nil {
		opts = DefaultWriteOptions()
	}

	if err := db.wal.Set(key, value); err != nil {
		return err
	}
	if opts.Sync {
		if err := db.wal.Sync(); err != nil {
			return err
		}
	}

	db.mem.Set(key, value)
	return nil
}

// Close releases the database's file handles. After Close, Set returns
// ErrDBClosed; Get keeps answering from the in-memory table.
func (db *Db) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true
	return db.file.Close()
}
