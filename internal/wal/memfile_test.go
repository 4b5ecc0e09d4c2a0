package wal

import "sync"

// memFile is an in-memory stand-in for a vfs.VFile, letting the wal tests
// exercise framing and corruption scenarios without touching disk.
type memFile struct {
	mu   sync.Mutex
	data []byte
}

func (f *memFile) Append(p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = append(f.data, p...)
	return nil
}

func (f *memFile) ReadAt(offset int64, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(buf, f.data[offset:offset+int64(len(buf))])
	return nil
}

func (f *memFile) Len() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.data)), nil
}

func (f *memFile) Sync() error { return nil }

func (f *memFile) bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}

func (f *memFile) corruptByte(offset int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[offset] ^= 0xff
}

func (f *memFile) truncate(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = f.data[:n]
}
