package storage

import (
	"fmt"
	"io"
	"os"
)

// DiskManager performs page-granular reads/writes against a single OS file
// opened read+write+create. It takes no in-process lock: the buffer pool
// serializes concurrent access to a given page_id via pinning, and disk
// I/O for distinct pages may run concurrently against the same *os.File
// (the kernel serializes per-inode access at page granularity).
type DiskManager struct {
	file *os.File
}

// NewDiskManager opens (creating if necessary) the single-file page store.
func NewDiskManager(path string) (*DiskManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0664)
	if err != nil {
		return nil, fmt.Errorf("storage: open database file: %w", err)
	}
	return &DiskManager{file: f}, nil
}

// ReadPage reads PageSize bytes at pageID*PageSize into buf (which must
// already be PageSize-long) and returns it. Short reads past EOF are
// zero-filled, matching a freshly-extended file's semantics.
func (dm *DiskManager) ReadPage(pageID uint32, buf []byte) ([]byte, error) {
	if len(buf) != PageSize {
		return buf, ErrBadPageBuffer
	}
	offset := int64(pageID) * int64(PageSize)

	n, err := dm.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return buf, fmt.Errorf("storage: read page %d: %w", pageID, err)
	}
	for i := n; i < PageSize; i++ {
		buf[i] = 0
	}
	return buf, nil
}

// WritePage writes buf (PageSize bytes) at pageID*PageSize.
func (dm *DiskManager) WritePage(pageID uint32, buf []byte) ([]byte, error) {
	if len(buf) != PageSize {
		return buf, ErrBadPageBuffer
	}
	offset := int64(pageID) * int64(PageSize)

	if _, err := dm.file.WriteAt(buf, offset); err != nil {
		return buf, fmt.Errorf("storage: write page %d: %w", pageID, err)
	}
	return buf, nil
}

// Close closes the underlying file. No fsync policy is enforced; durability
// is a non-goal of this core.
func (dm *DiskManager) Close() error {
	return dm.file.Close()
}
