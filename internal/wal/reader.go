// reader.go implements physical record parsing for the write-ahead log: a
// block-at-a-time reader that reassembles fragmented logical records and
// validates each physical record's checksum.
//
// The log format gives no tolerance for a damaged record in the middle of
// the file: the only corruption a reader is expected to survive is a torn
// write at the very end of the log, left by a crash mid-append. ReadRecord
// therefore stops at the first corrupt or incomplete record rather than
// skipping past it and resuming further on.
package wal

import (
	"errors"
	"io"

	"github.com/durakv/durakv/internal/checksum"
	"github.com/durakv/durakv/internal/encoding"
)

var (
	// ErrCorruptedRecord indicates a physical record whose stored checksum
	// does not match its type and payload.
	ErrCorruptedRecord = errors.New("wal: corrupted record (checksum mismatch)")

	// ErrInvalidRecordType indicates a record whose type byte is not one of
	// the four known fragment types.
	ErrInvalidRecordType = errors.New("wal: invalid record type")

	// ErrUnexpectedEOF indicates the file ends partway through a physical
	// record: a torn write left by a crash mid-append.
	ErrUnexpectedEOF = errors.New("wal: unexpected end of file within a record")
)

// randomReader is the minimal surface a Reader needs from its source file.
type randomReader interface {
	ReadAt(offset int64, buf []byte) error
	Len() (int64, error)
}

// Reader parses physical records out of a log file and reassembles them
// into logical payloads.
type Reader struct {
	src  randomReader
	size int64
	// offset is the absolute file offset of the next unread block.
	offset int64
	// buffer holds the unconsumed tail of the most recently read block.
	buffer []byte

	fragments          []byte
	inFragmentedRecord bool
}

// NewReader creates a Reader over src. The file's length is captured once
// at construction: a log is read only after its writer has stopped
// appending to it (or before a fresh append session resumes it), never
// concurrently with a writer.
func NewReader(src randomReader) (*Reader, error) {
	size, err := src.Len()
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, size: size}, nil
}

// ReadRecord returns the next logical payload from the log. It returns
// io.EOF once the log is exhausted cleanly at a record boundary, or
// ErrUnexpectedEOF/ErrCorruptedRecord if the log ends mid-record.
func (r *Reader) ReadRecord() ([]byte, error) {
	r.fragments = r.fragments[:0]
	r.inFragmentedRecord = false

	for {
		recordType, fragment, err := r.readPhysicalRecord()
		if err != nil {
			if errors.Is(err, io.EOF) && r.inFragmentedRecord {
				return nil, ErrUnexpectedEOF
			}
			return nil, err
		}

		switch recordType {
		case FullType:
			return fragment, nil

		case FirstType:
			r.fragments = append(r.fragments[:0], fragment...)
			r.inFragmentedRecord = true

		case MiddleType:
			if !r.inFragmentedRecord {
				return nil, ErrCorruptedRecord
			}
			r.fragments = append(r.fragments, fragment...)

		case LastType:
			if !r.inFragmentedRecord {
				return nil, ErrCorruptedRecord
			}
			r.fragments = append(r.fragments, fragment...)
			r.inFragmentedRecord = false
			result := make([]byte, len(r.fragments))
			copy(result, r.fragments)
			return result, nil
		}
	}
}

// readPhysicalRecord reads and validates a single physical record,
// advancing past any zero-padded block trailer first.
func (r *Reader) readPhysicalRecord() (RecordType, []byte, error) {
	for {
		if len(r.buffer) < HeaderSize {
			if err := r.fillBuffer(); err != nil {
				return 0, nil, err
			}
		}
		if len(r.buffer) < HeaderSize {
			return 0, nil, ErrUnexpectedEOF
		}

		header := r.buffer[:HeaderSize]
		crcStored := encoding.DecodeFixed32(header[0:4])
		length := int(encoding.DecodeFixed16(header[4:6]))
		recordType := RecordType(header[6])

		if recordType == ZeroType && length == 0 {
			// Not reachable with fillBuffer discarding trailers on its own:
			// a fresh block's first header is never zero. Kept as a guard
			// against a preallocated-but-never-written block, the case
			// LevelDB's own reader defends against.
			r.buffer = r.buffer[HeaderSize:]
			continue
		}
		if !IsFragmentType(recordType) {
			return 0, nil, ErrInvalidRecordType
		}
		if len(r.buffer) < HeaderSize+length {
			return 0, nil, ErrUnexpectedEOF
		}

		payload := r.buffer[HeaderSize : HeaderSize+length]
		crc := checksum.Extend(checksum.Value([]byte{byte(recordType)}), payload)
		if crc != crcStored {
			return 0, nil, ErrCorruptedRecord
		}

		result := make([]byte, length)
		copy(result, payload)
		r.buffer = r.buffer[HeaderSize+length:]
		return recordType, result, nil
	}
}

// fillBuffer reads the next block (or the shorter final partial block) into
// r.buffer. It is only called when fewer than HeaderSize bytes remain in
// the buffer, which under the writer's invariant (format.go, Writer.Write
// zero-pads whenever fewer than HeaderSize bytes are left in a block) means
// those leftover bytes are block-trailer padding, not record data. They are
// discarded rather than carried forward: a zero `type` byte means "end of
// block; advance to the next block boundary," and that holds just as much
// for a short trailer as for a full zeroed header. The exception is a short
// remainder at the end of the file that stops short of a block boundary:
// no trailer ends there, so it is a torn header and yields ErrUnexpectedEOF.
func (r *Reader) fillBuffer() error {
	if len(r.buffer) > 0 && r.offset%BlockSize != 0 {
		return ErrUnexpectedEOF
	}
	r.buffer = nil

	if r.offset >= r.size {
		return io.EOF
	}

	n := BlockSize
	if remaining := r.size - r.offset; remaining < int64(n) {
		n = int(remaining)
	}

	buf := make([]byte, n)
	if err := r.src.ReadAt(r.offset, buf); err != nil {
		return err
	}
	r.offset += int64(n)
	r.buffer = buf
	return nil
}

// Remaining reports how many bytes of the underlying file have not yet
// been consumed into a returned physical record, including any bytes
// already buffered. Replay uses this to tell a torn tail (little or
// nothing left unread) from interior corruption (at least a full block
// still unread beyond the failing record).
func (r *Reader) Remaining() int64 {
	return r.size - r.offset + int64(len(r.buffer))
}
