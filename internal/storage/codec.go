package storage

import (
	"github.com/ringdb/ringdb/internal/alias/bx"
)

// Canonical binary encoding shared by on-disk tuple storage and the wire
// protocol's result envelope (see server/wireproto). All multi-byte
// integers are little-endian. Strings and lists are length-prefixed with a
// u64 count/length; variants carry a single u8 discriminant byte ahead of
// their payload.
const (
	tagInt    byte = 0
	tagString byte = 1
)

// EncodeValue appends the canonical encoding of v to dst and returns it.
func EncodeValue(dst []byte, v Value) []byte {
	switch v.typ {
	case TypeInt:
		dst = append(dst, tagInt)
		var b [8]byte
		bx.PutU64(b[:], uint64(v.i))
		dst = append(dst, b[:]...)
	case TypeVarchar:
		dst = append(dst, tagString)
		dst = appendLenPrefixed(dst, []byte(v.s))
	}
	return dst
}

// DecodeValue reads one Value from buf, returning the remaining bytes.
func DecodeValue(buf []byte) (Value, []byte, error) {
	if len(buf) < 1 {
		return Value{}, nil, ErrBadTupleBuffer
	}
	tag := buf[0]
	buf = buf[1:]

	switch tag {
	case tagInt:
		if len(buf) < 8 {
			return Value{}, nil, ErrBadTupleBuffer
		}
		v := int64(bx.U64(buf[:8]))
		return IntValue(v), buf[8:], nil
	case tagString:
		s, rest, err := readLenPrefixed(buf)
		if err != nil {
			return Value{}, nil, err
		}
		return StringValue(string(s)), rest, nil
	default:
		return Value{}, nil, ErrBadTupleBuffer
	}
}

// EncodeTuple encodes values in schema column order as a count-prefixed
// sequence of Values. This is the byte layout stored as a page record and
// is also reused, unchanged, for the wire protocol's Tuple encoding.
func EncodeTuple(t Tuple) []byte {
	out := make([]byte, 0, 32)
	var cnt [8]byte
	bx.PutU64(cnt[:], uint64(len(t.Values)))
	out = append(out, cnt[:]...)
	for _, v := range t.Values {
		out = EncodeValue(out, v)
	}
	return out
}

// DecodeTuple decodes a Tuple encoded by EncodeTuple.
func DecodeTuple(buf []byte) (Tuple, error) {
	if len(buf) < 8 {
		return Tuple{}, ErrBadTupleBuffer
	}
	n := bx.U64(buf[:8])
	buf = buf[8:]

	values := make([]Value, 0, n)
	for i := uint64(0); i < n; i++ {
		v, rest, err := DecodeValue(buf)
		if err != nil {
			return Tuple{}, err
		}
		values = append(values, v)
		buf = rest
	}
	return Tuple{Values: values}, nil
}

func appendLenPrefixed(dst []byte, data []byte) []byte {
	var b [8]byte
	bx.PutU64(b[:], uint64(len(data)))
	dst = append(dst, b[:]...)
	dst = append(dst, data...)
	return dst
}

func readLenPrefixed(buf []byte) ([]byte, []byte, error) {
	if len(buf) < 8 {
		return nil, nil, ErrBadTupleBuffer
	}
	n := bx.U64(buf[:8])
	buf = buf[8:]
	if uint64(len(buf)) < n {
		return nil, nil, ErrBadTupleBuffer
	}
	return buf[:n], buf[n:], nil
}
