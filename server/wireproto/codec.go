package wireproto

import (
	"fmt"

	"github.com/ringdb/ringdb/internal/alias/bx"
	"github.com/ringdb/ringdb/internal/sql/executor"
	"github.com/ringdb/ringdb/internal/storage"
)

const (
	outerErr byte = 0
	outerOk  byte = 1

	kindMessage byte = 0
	kindData    byte = 1
)

// EncodeResult encodes the outcome of one statement: either execErr's
// message (if non-nil) or res as a Message/Data variant.
func EncodeResult(res *executor.Result, execErr error) []byte {
	if execErr != nil {
		out := []byte{outerErr}
		return appendString(out, execErr.Error())
	}

	out := []byte{outerOk}
	if res.IsData {
		out = append(out, kindData)
		out = appendTupleList(out, res.Tuples)
		return out
	}
	out = append(out, kindMessage)
	return appendString(out, res.Message)
}

// DecodeResult reverses EncodeResult: it returns either a *executor.Result
// on success or a plain error carrying the server's message.
func DecodeResult(buf []byte) (*executor.Result, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("wireproto: empty result payload")
	}
	tag := buf[0]
	buf = buf[1:]

	switch tag {
	case outerErr:
		msg, _, err := readString(buf)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s", msg)
	case outerOk:
		if len(buf) < 1 {
			return nil, fmt.Errorf("wireproto: truncated ok result")
		}
		kind := buf[0]
		buf = buf[1:]
		switch kind {
		case kindMessage:
			msg, _, err := readString(buf)
			if err != nil {
				return nil, err
			}
			return executor.MessageResult(msg), nil
		case kindData:
			tuples, err := readTupleList(buf)
			if err != nil {
				return nil, err
			}
			return executor.DataResult(tuples), nil
		default:
			return nil, fmt.Errorf("wireproto: unknown result kind %d", kind)
		}
	default:
		return nil, fmt.Errorf("wireproto: unknown outer tag %d", tag)
	}
}

func appendString(dst []byte, s string) []byte {
	var b [8]byte
	bx.PutU64(b[:], uint64(len(s)))
	dst = append(dst, b[:]...)
	dst = append(dst, s...)
	return dst
}

func readString(buf []byte) (string, []byte, error) {
	if len(buf) < 8 {
		return "", nil, fmt.Errorf("wireproto: truncated string length")
	}
	n := bx.U64(buf[:8])
	buf = buf[8:]
	if uint64(len(buf)) < n {
		return "", nil, fmt.Errorf("wireproto: truncated string body")
	}
	return string(buf[:n]), buf[n:], nil
}

func appendTupleList(dst []byte, tuples []storage.Tuple) []byte {
	var b [8]byte
	bx.PutU64(b[:], uint64(len(tuples)))
	dst = append(dst, b[:]...)
	for _, t := range tuples {
		dst = append(dst, storage.EncodeTuple(t)...)
	}
	return dst
}

func readTupleList(buf []byte) ([]storage.Tuple, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("wireproto: truncated tuple list length")
	}
	n := bx.U64(buf[:8])
	buf = buf[8:]

	tuples := make([]storage.Tuple, 0, n)
	for i := uint64(0); i < n; i++ {
		t, rest, err := decodeTupleAndRest(buf)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
		buf = rest
	}
	return tuples, nil
}

// decodeTupleAndRest decodes one storage.EncodeTuple-framed tuple and
// returns the bytes remaining after it. storage.DecodeTuple trusts its
// input to be exactly one tuple, so we first re-derive its length here by
// walking the same count-prefixed value sequence it encodes.
func decodeTupleAndRest(buf []byte) (storage.Tuple, []byte, error) {
	if len(buf) < 8 {
		return storage.Tuple{}, nil, fmt.Errorf("wireproto: truncated tuple header")
	}
	n := bx.U64(buf[:8])
	cursor := buf[8:]
	for i := uint64(0); i < n; i++ {
		_, rest, err := storage.DecodeValue(cursor)
		if err != nil {
			return storage.Tuple{}, nil, err
		}
		cursor = rest
	}
	consumed := len(buf) - len(cursor)
	t, err := storage.DecodeTuple(buf[:consumed])
	if err != nil {
		return storage.Tuple{}, nil, err
	}
	return t, buf[consumed:], nil
}
