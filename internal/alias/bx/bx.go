// Package bx holds the little-endian accessors the page layout and wire
// codec share. Scoped down to exactly the widths ringdb's tuples and
// frames use: u16 slot lengths, u64 counts and integer values.
package bx

import "encoding/binary"

var LE = binary.LittleEndian

func U16(b []byte) uint16 { return LE.Uint16(b) }
func U64(b []byte) uint64 { return LE.Uint64(b) }

func PutU16(b []byte, v uint16) { LE.PutUint16(b, v) }
func PutU64(b []byte, v uint64) { LE.PutUint64(b, v) }
