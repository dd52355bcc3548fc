// Package database wires the catalog and buffer pool together behind one
// facade, the way the teacher's pkg/database.New does: open the data
// file, build a pool of the requested size, and expose a single
// RunStatement entry point that drives parse -> executor factory ->
// execute.
package database

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/ringdb/ringdb/internal/bufferpool"
	"github.com/ringdb/ringdb/internal/catalog"
	"github.com/ringdb/ringdb/internal/sql/executor"
	"github.com/ringdb/ringdb/internal/sql/parser"
	"github.com/ringdb/ringdb/internal/storage"
)

// Database owns the buffer pool and catalog backing one data file.
type Database struct {
	pool    *bufferpool.Manager
	catalog *catalog.Catalog
	dm      *storage.DiskManager
}

// New opens dbFile (creating it if absent) and constructs a buffer pool
// of poolSize frames and an empty catalog.
func New(dbFile string, poolSize int) (*Database, error) {
	dm, err := storage.NewDiskManager(dbFile)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", dbFile, err)
	}

	return &Database{
		pool:    bufferpool.NewManager(dm, poolSize),
		catalog: catalog.New(),
		dm:      dm,
	}, nil
}

// RunStatement parses sql and executes it against this database.
func (db *Database) RunStatement(sql string) (*executor.Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}

	ex, err := executor.NewExecutor(stmt, db.catalog, db.pool)
	if err != nil {
		return nil, err
	}
	return ex.Execute()
}

// Close flushes dirty pages and closes the underlying data file. Both
// steps run even if the first fails, and any failures are combined so
// neither is silently dropped.
func (db *Database) Close() error {
	flushErr := db.pool.FlushAll()
	closeErr := db.dm.Close()
	return multierr.Combine(
		wrapIfErr(flushErr, "database: flush on close: %w"),
		wrapIfErr(closeErr, "database: close data file: %w"),
	)
}

func wrapIfErr(err error, format string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format, err)
}
