// Package vfs provides a minimal virtual filesystem abstraction: a base
// directory handle that opens files, and a per-file handle that guards an
// append cursor and a read cursor behind a single mutex.
//
// Every VFile is opened once and used for the database's entire lifetime, so
// there is no separate Create/Open split by access mode: Open creates the
// file if it does not already exist and is safe to call on an existing one.
package vfs

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Vfs is a base directory handle that resolves relative paths beneath it.
type Vfs struct {
	base string
}

// New returns a Vfs rooted at base. The directory is created if missing.
func New(base string) (*Vfs, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &Vfs{base: base}, nil
}

// Open opens (creating if necessary) the file at name, relative to the
// Vfs's base directory, and returns a VFile positioned for append writes
// and sequential/random reads.
func (v *Vfs) Open(name string) (*VFile, error) {
	path := filepath.Join(v.base, name)

	// The writer handle is opened first with O_CREATE so that a
	// brand-new file exists by the time the reader handle is opened.
	writer, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	reader, err := os.Open(path)
	if err != nil {
		_ = writer.Close()
		return nil, err
	}
	return &VFile{writer: writer, reader: reader}, nil
}

// VFile is a single file with an append-only write end and a read end,
// both guarded by one mutex: writes and reads against the same file never
// interleave.
type VFile struct {
	mu     sync.Mutex
	writer *os.File
	reader *os.File

	// readOffset tracks the sequential read cursor maintained by ReadExact.
	readOffset int64
}

// Append writes data to the end of the file.
func (f *VFile) Append(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.writer.Write(data)
	return err
}

// ReadAt reads exactly len(buf) bytes starting at the given absolute
// offset, without disturbing the sequential read cursor used by ReadExact.
func (f *VFile) ReadAt(offset int64, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.reader.ReadAt(buf, offset)
	return err
}

// ReadExact reads exactly len(buf) bytes from the current sequential read
// cursor and advances it. Returns io.EOF if the cursor is already at the
// end of the file, or io.ErrUnexpectedEOF if the stream ends partway
// through buf.
func (f *VFile) ReadExact(buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, err := f.reader.ReadAt(buf, f.readOffset)
	f.readOffset += int64(n)
	if err == io.EOF && n > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Seek repositions the sequential read cursor to an absolute offset.
func (f *VFile) Seek(offset int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readOffset = offset
}

// Len returns the current file size in bytes.
func (f *VFile) Len() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	info, err := f.writer.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Sync flushes the file's writes to stable storage.
func (f *VFile) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writer.Sync()
}

// Close releases both the write and read file descriptors.
func (f *VFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	werr := f.writer.Close()
	rerr := f.reader.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
