// Package bufferpool implements a fixed-capacity buffer pool manager with a
// CLOCK replacement policy, modeled on internal/bufferpool/pool.go's
// frame/page-table/victim-selection shape but reworked around page guards
// that release their pin (and, for writers, mark the frame dirty) when
// dropped.
package bufferpool

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/ringdb/ringdb/internal/clockx"
	"github.com/ringdb/ringdb/internal/storage"
)

const logPrefix = "bufferpool: "

// sentinelPageID marks a frame that has never held a real page.
const sentinelPageID = ^uint32(0)

var (
	// ErrNoFreeFrame is returned when every frame is pinned and none can
	// be evicted to satisfy a miss.
	ErrNoFreeFrame = errors.New("bufferpool: no free frame available")
)

// frame holds one page's bytes and bookkeeping. The pool exclusively owns
// every frame's data buffer.
type frame struct {
	pageID uint32
	data   []byte
	dirty  bool
}

// Manager is a fixed-size buffer pool bound to one DiskManager.
type Manager struct {
	dm *storage.DiskManager

	framesMu sync.RWMutex
	frames   []*frame

	tableMu   sync.Mutex
	pageTable map[uint32]int

	replacer *clockx.Replacer
	poolSize int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewManager constructs a pool of poolSize frames, all initially empty.
func NewManager(dm *storage.DiskManager, poolSize int) *Manager {
	if poolSize <= 0 {
		poolSize = 1
	}
	frames := make([]*frame, poolSize)
	for i := range frames {
		frames[i] = &frame{pageID: sentinelPageID, data: make([]byte, storage.PageSize)}
	}
	return &Manager{
		dm:        dm,
		frames:    frames,
		pageTable: make(map[uint32]int),
		replacer:  clockx.New(poolSize),
		poolSize:  poolSize,
	}
}

// getFrameForPage implements the hit/miss protocol shared by FetchPage and
// FetchPageWrite: on a hit it pins the resident frame; on a miss it evicts
// a victim frame (flushing it first if dirty), loads pageID from disk into
// it, and installs the new page_table mapping.
func (m *Manager) getFrameForPage(pageID uint32) (int, error) {
	m.tableMu.Lock()
	if frameID, ok := m.pageTable[pageID]; ok {
		m.tableMu.Unlock()
		m.replacer.Pin(frameID)
		m.hits.Inc()
		slog.Debug(logPrefix+"hit", "pageID", pageID, "frameID", frameID)
		return frameID, nil
	}
	m.tableMu.Unlock()

	m.misses.Inc()

	victim, ok := m.replacer.Victim()
	if !ok {
		return 0, ErrNoFreeFrame
	}
	m.replacer.Pin(victim)

	m.framesMu.Lock()
	f := m.frames[victim]
	oldPageID := f.pageID
	isDirty := f.dirty
	buf := f.data
	f.data = nil
	m.framesMu.Unlock()

	if isDirty && oldPageID != sentinelPageID {
		var err error
		buf, err = m.dm.WritePage(oldPageID, buf)
		if err != nil {
			return 0, fmt.Errorf("bufferpool: flush victim page %d: %w", oldPageID, err)
		}
	}

	for i := range buf {
		buf[i] = 0
	}

	buf, err := m.dm.ReadPage(pageID, buf)
	if err != nil {
		return 0, fmt.Errorf("bufferpool: load page %d: %w", pageID, err)
	}

	m.framesMu.Lock()
	m.tableMu.Lock()
	if oldPageID != sentinelPageID {
		delete(m.pageTable, oldPageID)
	}
	f.pageID = pageID
	f.dirty = false
	f.data = buf
	m.pageTable[pageID] = victim
	m.tableMu.Unlock()
	m.framesMu.Unlock()

	slog.Debug(logPrefix+"miss", "pageID", pageID, "victimFrame", victim, "evictedPageID", oldPageID)
	return victim, nil
}

// FetchPage pins pageID's frame for reading and returns a guard that
// unpins it on Release.
func (m *Manager) FetchPage(pageID uint32) (*PageGuard, error) {
	frameID, err := m.getFrameForPage(pageID)
	if err != nil {
		return nil, err
	}
	return &PageGuard{pool: m, frameID: frameID}, nil
}

// FetchPageWrite pins pageID's frame for writing and returns a guard that
// marks the frame dirty and unpins it on Release.
func (m *Manager) FetchPageWrite(pageID uint32) (*PageWriteGuard, error) {
	frameID, err := m.getFrameForPage(pageID)
	if err != nil {
		return nil, err
	}
	return &PageWriteGuard{PageGuard{pool: m, frameID: frameID}}, nil
}

// FlushAll writes every dirty frame back to disk. Used on graceful
// shutdown; this core enforces no fsync/durability policy beyond it.
func (m *Manager) FlushAll() error {
	m.framesMu.Lock()
	defer m.framesMu.Unlock()

	for _, f := range m.frames {
		if f.pageID == sentinelPageID || !f.dirty {
			continue
		}
		buf, err := m.dm.WritePage(f.pageID, f.data)
		if err != nil {
			return err
		}
		f.data = buf
		f.dirty = false
	}
	return nil
}

// Stats reports cumulative hit/miss counts, useful for diagnostics.
func (m *Manager) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// PoolSize returns the number of frames this pool manages.
func (m *Manager) PoolSize() int { return m.poolSize }
