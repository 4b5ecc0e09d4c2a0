package durakv

// options.go holds database configuration.

import "github.com/durakv/durakv/internal/logging"

// Logger is an alias for the logging.Logger interface, letting callers
// pass their own implementation without importing internal/logging.
type Logger = logging.Logger

// Options configures Open.
type Options struct {
	// CreateIfMissing causes Open to create the database directory and log
	// file if they do not already exist.
	CreateIfMissing bool

	// Comparator defines key order. A nil Comparator uses
	// memtable.BytewiseComparator.
	Comparator func(a, b []byte) int

	// Logger receives diagnostic output. A nil Logger gets a default
	// WARN-level logger writing to stderr.
	Logger Logger
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() *Options {
	return &Options{
		CreateIfMissing: true,
	}
}

// WriteOptions configures a single Set call.
type WriteOptions struct {
	// Sync causes Set to fsync the log file before returning, trading
	// throughput for a guarantee that the write survives a crash.
	Sync bool
}

// DefaultWriteOptions returns the write options used when none are
// supplied.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{Sync: false}
}
