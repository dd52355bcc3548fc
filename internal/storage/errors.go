package storage

import "errors"

const (
	OneKB = 1024
	OneMB = OneKB * 1024

	// PageSize is the fixed page size, similar to PostgreSQL's default.
	PageSize = OneKB * 8

	// HeaderSize is the fixed page header: a single little-endian u16 tuple count.
	HeaderSize = 2

	FileMode0664 = 0o664
)

var (
	ErrPageFull       = errors.New("storage: page is full")
	ErrBadSlot        = errors.New("storage: slot out of range")
	ErrBadPageBuffer  = errors.New("storage: buffer is not PageSize bytes")
	ErrSchemaMismatch = errors.New("storage: value count does not match schema")
	ErrBadTupleBuffer = errors.New("storage: truncated or corrupt tuple buffer")
)
