package storage

import (
	"github.com/ringdb/ringdb/internal/alias/bx"
)

// Page is a fixed-size (PageSize) slotted page. The first HeaderSize bytes
// hold a little-endian u16 tuple count; the body is a packed sequence of
// (len u16 LE, bytes[len]) records starting at offset HeaderSize. Slot IDs
// are positional (0-based insertion order): there is no free-list and no
// tombstones, matching the heap-file model of a single append-only page.
type Page struct {
	buf [PageSize]byte
}

// NewPage returns a zeroed page with tuple_count = 0.
func NewPage() *Page {
	return &Page{}
}

// FromBytes decodes a page from a PageSize-byte buffer, retaining it whole.
func FromBytes(buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, ErrBadPageBuffer
	}
	p := &Page{}
	copy(p.buf[:], buf)
	return p, nil
}

// ToBytes re-encodes the header over the retained buffer and returns a
// copy of it.
func (p *Page) ToBytes() []byte {
	bx.PutU16(p.buf[0:2], p.tupleCount())
	out := make([]byte, PageSize)
	copy(out, p.buf[:])
	return out
}

func (p *Page) tupleCount() uint16 {
	return bx.U16(p.buf[0:2])
}

func (p *Page) setTupleCount(n uint16) {
	bx.PutU16(p.buf[0:2], n)
}

// InsertTuple appends bytes as a new record, returning its slot id (the
// tuple count prior to insertion). Returns ErrPageFull if there is not
// enough trailing space to hold a (len, bytes) record.
func (p *Page) InsertTuple(data []byte) (int, error) {
	tail, err := p.tailOffset()
	if err != nil {
		return 0, err
	}

	if int(tail)+2+len(data) > PageSize {
		return 0, ErrPageFull
	}

	bx.PutU16(p.buf[tail:tail+2], uint16(len(data)))
	copy(p.buf[tail+2:], data)

	slot := p.tupleCount()
	p.setTupleCount(slot + 1)
	return int(slot), nil
}

// GetTuple returns a copy of the bytes stored at slotID, or ErrBadSlot if
// slotID is out of range.
func (p *Page) GetTuple(slotID int) ([]byte, error) {
	if slotID < 0 || slotID >= int(p.tupleCount()) {
		return nil, ErrBadSlot
	}

	offset := uint32(HeaderSize)
	for i := 0; i < slotID; i++ {
		length := bx.U16(p.buf[offset : offset+2])
		offset += 2 + uint32(length)
	}

	length := bx.U16(p.buf[offset : offset+2])
	start := offset + 2
	out := make([]byte, length)
	copy(out, p.buf[start:start+uint32(length)])
	return out, nil
}

// NumTuples returns the page's current tuple count.
func (p *Page) NumTuples() int {
	return int(p.tupleCount())
}

// tailOffset walks every record from the header to find the first free byte.
func (p *Page) tailOffset() (uint32, error) {
	offset := uint32(HeaderSize)
	n := p.tupleCount()
	for i := uint16(0); i < n; i++ {
		if offset+2 > PageSize {
			return 0, ErrBadTupleBuffer
		}
		length := bx.U16(p.buf[offset : offset+2])
		offset += 2 + uint32(length)
	}
	return offset, nil
}
