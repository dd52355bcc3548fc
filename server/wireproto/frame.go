// Package wireproto implements the TCP wire protocol: a length-prefixed
// request (u32 big-endian length, then UTF-8 SQL text) and a
// length-prefixed response (u32 big-endian length, then the canonical
// binary encoding of a Result<ExecutionResult, string>). The outer frame
// length is the one big-endian field in the protocol; everything inside
// the payload uses the little-endian encoding from internal/storage.
package wireproto

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize bounds memory used decoding a single frame, guarding
// against malformed or hostile length prefixes.
const MaxFrameSize = 16 << 20 // 16 MiB

// ReadFrame reads one length-prefixed frame and returns its payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n == 0 {
		return nil, fmt.Errorf("wireproto: empty frame")
	}
	if n > MaxFrameSize {
		return nil, fmt.Errorf("wireproto: frame too large: %d > %d", n, MaxFrameSize)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteFrame writes payload as one length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("wireproto: empty payload")
	}
	if uint64(len(payload)) > MaxFrameSize {
		return fmt.Errorf("wireproto: payload too large: %d > %d", len(payload), MaxFrameSize)
	}

	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(payload)))

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
