// writer.go implements physical record framing for the write-ahead log:
// an append-only stream writer that fragments logical records across
// block boundaries.
package wal

import (
	"fmt"

	"github.com/durakv/durakv/internal/checksum"
	"github.com/durakv/durakv/internal/encoding"
	"github.com/durakv/durakv/internal/testutil"
)

// appender is the minimal surface a Writer needs from its destination.
type appender interface {
	Append(data []byte) error
	Len() (int64, error)
}

// Writer frames payloads into physical records and appends them to a file,
// splitting a payload across block boundaries when it does not fit in the
// remainder of the current block.
type Writer struct {
	dest        appender
	blockOffset int

	// typeCRC holds the CRC32C of each single-byte record type, since the
	// header's checksum always starts by covering the type byte.
	typeCRC [LastType + 1]uint32

	headerBuf [HeaderSize]byte
}

// NewWriter creates a Writer appending to dest. The initial block offset is
// derived from dest's current length, so re-opening an existing log file
// resumes fragmenting from the right place within its last block.
func NewWriter(dest appender) (*Writer, error) {
	size, err := dest.Len()
	if err != nil {
		return nil, err
	}

	w := &Writer{
		dest:        dest,
		blockOffset: int(size % BlockSize),
	}
	for i := range w.typeCRC {
		w.typeCRC[i] = checksum.Value([]byte{byte(i)})
	}
	return w, nil
}

// Write frames data as one or more physical records and appends them.
// An empty payload is still framed as a single FullType record with a
// zero-length body, so every logical write leaves a durable trace.
func (w *Writer) Write(data []byte) error {
	testutil.MaybeKill(testutil.KPWALAppend0)

	ptr := data
	left := len(data)
	begin := true

	for {
		leftover := BlockSize - w.blockOffset
		if leftover < HeaderSize {
			if leftover > 0 {
				if err := w.dest.Append(make([]byte, leftover)); err != nil {
					return err
				}
			}
			w.blockOffset = 0
		}

		avail := BlockSize - w.blockOffset - HeaderSize
		fragmentLength := left
		if avail < fragmentLength {
			fragmentLength = avail
		}

		end := left == fragmentLength
		var recordType RecordType
		switch {
		case begin && end:
			recordType = FullType
		case begin:
			recordType = FirstType
		case end:
			recordType = LastType
		default:
			recordType = MiddleType
		}

		if err := w.emitPhysicalRecord(recordType, ptr[:fragmentLength]); err != nil {
			return err
		}

		ptr = ptr[fragmentLength:]
		left -= fragmentLength
		begin = false

		if left == 0 {
			return nil
		}
	}
}

func (w *Writer) emitPhysicalRecord(t RecordType, payload []byte) error {
	n := len(payload)
	if n > MaxRecordPayload {
		panic(fmt.Sprintf("wal: record payload of %d bytes exceeds block capacity", n))
	}

	w.headerBuf[4] = byte(n)
	w.headerBuf[5] = byte(n >> 8)
	w.headerBuf[6] = byte(t)

	crc := checksum.Extend(w.typeCRC[t], payload)
	encoding.EncodeFixed32(w.headerBuf[:4], crc)

	if err := w.dest.Append(w.headerBuf[:]); err != nil {
		return err
	}
	if err := w.dest.Append(payload); err != nil {
		return err
	}

	w.blockOffset += HeaderSize + n
	return nil
}

// Sync flushes the underlying file to stable storage.
func (w *Writer) Sync() error {
	testutil.MaybeKill(testutil.KPWALSync0)
	if syncer, ok := w.dest.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			return err
		}
	}
	testutil.MaybeKill(testutil.KPWALSync1)
	return nil
}
