// Package catalog tracks the tables known to a running database: their
// names and column schemas. It holds no page or file bookkeeping -- that
// lives in internal/storage and internal/bufferpool -- only the mapping
// from table name to schema.
package catalog

import (
	"errors"
	"sync"

	"github.com/ringdb/ringdb/internal/storage"
)

var (
	// ErrTableExists is returned by CreateTable when the name is already
	// registered.
	ErrTableExists = errors.New("catalog: table already exists")
	// ErrTableNotFound is returned by GetTable for an unregistered name.
	ErrTableNotFound = errors.New("catalog: table not found")
)

// TableInfo describes one registered table.
type TableInfo struct {
	Name   string
	Schema storage.Schema
}

// Catalog is a mutex-guarded, in-memory table registry. Tables are never
// removed once created.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*TableInfo
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*TableInfo)}
}

// CreateTable registers a new table with the given schema.
func (c *Catalog) CreateTable(name string, schema storage.Schema) (*TableInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[name]; ok {
		return nil, ErrTableExists
	}

	info := &TableInfo{Name: name, Schema: schema}
	c.tables[name] = info
	return info, nil
}

// GetTable looks up a registered table by name and returns a snapshot
// copy, so a caller can never observe or cause a mutation through the
// catalog's own stored TableInfo.
func (c *Catalog) GetTable(name string) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}

	cols := make([]storage.Column, len(info.Schema.Columns))
	copy(cols, info.Schema.Columns)
	return &TableInfo{Name: info.Name, Schema: storage.Schema{Columns: cols}}, nil
}

// TableNames returns the names of every registered table, in no
// particular order.
func (c *Catalog) TableNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	return names
}
