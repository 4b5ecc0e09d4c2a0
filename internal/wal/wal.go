// wal.go implements the logical key/value layer on top of physical record
// framing: encoding a write as a length-prefixed payload and replaying a
// log file back into a sequence of (key, value) pairs.
package wal

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/durakv/durakv/internal/encoding"
	"github.com/durakv/durakv/internal/logging"
	"github.com/durakv/durakv/internal/vfs"
)

// file is the surface Wal needs from its backing VFile: it both appends
// (via Writer) and is read at random offsets (via Reader), so it must
// satisfy both.
type file interface {
	appender
	randomReader
	Sync() error
}

var _ file = (*vfs.VFile)(nil)

// Wal is a single write-ahead log file: a logical key/value append layer
// over the physical record framing in writer.go/reader.go. There is only
// ever one writer per log and the log is never rotated; a Wal's lifetime
// spans the database's lifetime.
type Wal struct {
	mu     sync.Mutex
	writer *Writer
	file   file
}

// Open wraps f with a Wal ready to accept writes. Any bytes already in f
// are left untouched; call Replay first if they need to be recovered.
func Open(f file) (*Wal, error) {
	w, err := NewWriter(f)
	if err != nil {
		return nil, err
	}
	return &Wal{writer: w, file: f}, nil
}

// Set appends a (key, value) write to the log as one logical record. The
// payload is varuint32(len(key)) || key || varuint32(len(value)) || value.
func (l *Wal) Set(key, value []byte) error {
	payload := make([]byte, 0, len(key)+len(value)+2*encoding.MaxVarint32Len)
	payload = encoding.EncodeVarint32(payload, uint32(len(key)))
	payload = append(payload, key...)
	payload = encoding.EncodeVarint32(payload, uint32(len(value)))
	payload = append(payload, value...)

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Write(payload)
}

// Sync flushes the log file to stable storage. Set does not sync on its
// own behalf; callers that need durability must call Sync explicitly.
func (l *Wal) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.Sync()
}

// Entry is a single (key, value) pair recovered from a log file.
type Entry struct {
	Key   []byte
	Value []byte
}

// Replay reads f from the beginning and decodes every logical record into
// an Entry, in the order they were written. An error at the log's tail —
// little or nothing left unread beyond the failing record — is treated as
// crash-truncation: it is logged as a warning and discarded, and entries
// decoded before it are returned without error. The same error with at
// least a full block of the file still unread beyond it is interior
// corruption and is fatal: it is logged as an error and returned to the
// caller.
func Replay(f randomReader, logger logging.Logger) ([]Entry, error) {
	logger = logging.OrDefault(logger)

	r, err := NewReader(f)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		payload, err := r.ReadRecord()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return entries, nil
			}
			if isTornTailCandidate(err) {
				if r.Remaining() < BlockSize {
					logger.Warnf("%sdiscarding torn tail record at end of log: %v", logging.NSWAL, err)
					return entries, nil
				}
				logger.Errorf("%sinterior corruption in log, %d bytes still unread: %v", logging.NSWAL, r.Remaining(), err)
			}
			return entries, err
		}

		entry, err := decodePayload(payload)
		if err != nil {
			if r.Remaining() < BlockSize {
				logger.Warnf("%sdiscarding malformed trailing payload: %v", logging.NSWAL, err)
				return entries, nil
			}
			logger.Errorf("%smalformed payload mid-log, %d bytes still unread: %v", logging.NSWAL, r.Remaining(), err)
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// isTornTailCandidate reports whether err is one of the kinds a crash
// mid-append can produce. Whether it is actually a torn tail, as opposed
// to interior corruption, is decided by how much of the file is still
// unread (see Replay).
func isTornTailCandidate(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF) || errors.Is(err, ErrCorruptedRecord) || errors.Is(err, ErrInvalidRecordType)
}

func decodePayload(payload []byte) (Entry, error) {
	keyLen, n, err := encoding.DecodeVarint32(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("wal: decoding key length: %w", err)
	}
	payload = payload[n:]
	if uint32(len(payload)) < keyLen {
		return Entry{}, fmt.Errorf("wal: payload shorter than declared key length")
	}
	key := payload[:keyLen]
	payload = payload[keyLen:]

	valueLen, n, err := encoding.DecodeVarint32(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("wal: decoding value length: %w", err)
	}
	payload = payload[n:]
	if uint32(len(payload)) < valueLen {
		return Entry{}, fmt.Errorf("wal: payload shorter than declared value length")
	}
	value := payload[:valueLen]

	return Entry{Key: key, Value: value}, nil
}
