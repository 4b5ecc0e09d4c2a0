/*
Package durakv implements the write path of a log-structured embedded
key/value store: a write-ahead log in the classic LevelDB/RocksDB block
format, an ordered in-memory table, and an sstable block builder.

# Scope

This package covers writes and crash-safe recovery of a single log file
into memory. It does not implement compaction, a manifest, level
management, bloom filters, multi-version concurrency control, or
transactions — the on-disk table built by internal/block is a standalone
building block, not yet wired into a read path that merges data and table
files.

# Concurrency

A Db is safe for concurrent use by multiple goroutines: Set holds the
Db's own mutex across both the write-ahead log append and the in-memory
table update, and reads serialize through the in-memory table's mutex.

Reference: RocksDB v10.7.5 include/rocksdb/db.h; cfeitong/cft-leveldb
src/wal.rs and src/vfs.rs for the exact log and file semantics this
package reproduces.
*/
package durakv
