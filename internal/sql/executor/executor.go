// Package executor turns a parsed statement into a single-use, dynamically
// dispatched task that runs against the catalog and buffer pool. The
// sequential scan overlaps page I/O with tuple decoding by prefetching
// prefetchPages pages ahead of the consumer via sourcegraph/conc/stream,
// which preserves submission order across concurrently completing fetches
// the same way the spec's per-batch join-all does.
package executor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/stream"

	"github.com/ringdb/ringdb/internal/bufferpool"
	"github.com/ringdb/ringdb/internal/catalog"
	"github.com/ringdb/ringdb/internal/sql/parser"
	"github.com/ringdb/ringdb/internal/storage"
)

const (
	// prefetchPages bounds how many page fetches the scan overlaps at once.
	prefetchPages = 16
	// totalPages is the hardcoded scan bound; a per-table page directory
	// would replace this once the catalog tracks page counts.
	totalPages = 128
)

// Executor runs a single parsed statement to completion.
type Executor interface {
	Execute() (*Result, error)
}

// NewExecutor is the executor factory: it chooses an Executor from a
// parsed Statement.
func NewExecutor(stmt parser.Statement, cat *catalog.Catalog, pool *bufferpool.Manager) (Executor, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return &CreateTableExecutor{stmt: s, catalog: cat}, nil
	case *parser.InsertStmt:
		return &InsertExecutor{stmt: s, catalog: cat, pool: pool}, nil
	case *parser.SelectStmt:
		return &SequentialScanExecutor{stmt: s, catalog: cat, pool: pool}, nil
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

// CreateTableExecutor registers a new table in the catalog.
type CreateTableExecutor struct {
	stmt    *parser.CreateTableStmt
	catalog *catalog.Catalog
}

func (e *CreateTableExecutor) Execute() (*Result, error) {
	cols := make([]storage.Column, 0, len(e.stmt.Columns))
	for _, c := range e.stmt.Columns {
		dt, err := storage.ParseDataType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("executor: column %s: %w", c.Name, err)
		}
		cols = append(cols, storage.Column{Name: c.Name, Type: dt})
	}

	_, err := e.catalog.CreateTable(e.stmt.TableName, storage.Schema{Columns: cols})
	if err != nil {
		if errors.Is(err, catalog.ErrTableExists) {
			return nil, fmt.Errorf("Table '%s' already exists.", e.stmt.TableName)
		}
		return nil, err
	}
	return MessageResult(fmt.Sprintf("Table '%s' created.", e.stmt.TableName)), nil
}

// InsertExecutor encodes one tuple and appends it to page 0, the only
// page inserts currently target (the storage layer has no table-to-pages
// map yet).
type InsertExecutor struct {
	stmt    *parser.InsertStmt
	catalog *catalog.Catalog
	pool    *bufferpool.Manager
}

func (e *InsertExecutor) Execute() (*Result, error) {
	info, err := e.catalog.GetTable(e.stmt.TableName)
	if err != nil {
		if errors.Is(err, catalog.ErrTableNotFound) {
			return nil, fmt.Errorf("Table '%s' not found.", e.stmt.TableName)
		}
		return nil, err
	}

	tuple, err := coerceInsertValues(info.Schema, e.stmt.Values)
	if err != nil {
		return nil, err
	}
	encoded := storage.EncodeTuple(tuple)

	guard, err := e.pool.FetchPageWrite(0)
	if err != nil {
		return nil, fmt.Errorf("executor: fetch page 0 for insert: %w", err)
	}
	defer guard.Release()

	var insertErr error
	guard.Mutate(func(data []byte) {
		page, decErr := storage.FromBytes(data)
		if decErr != nil {
			insertErr = decErr
			return
		}
		if _, insertErr = page.InsertTuple(encoded); insertErr != nil {
			return
		}
		copy(data, page.ToBytes())
	})
	if insertErr != nil {
		if errors.Is(insertErr, storage.ErrPageFull) {
			return nil, errors.New("Failed to insert tuple: page is full.")
		}
		return nil, insertErr
	}

	return MessageResult("1 row inserted."), nil
}

func coerceInsertValues(schema storage.Schema, exprs []parser.Expr) (storage.Tuple, error) {
	if len(exprs) != len(schema.Columns) {
		return storage.Tuple{}, fmt.Errorf(
			"executor: insert values count %d != schema %d", len(exprs), len(schema.Columns),
		)
	}

	values := make([]storage.Value, len(exprs))
	for i, expr := range exprs {
		lit, ok := expr.(*parser.LiteralExpr)
		if !ok {
			return storage.Tuple{}, fmt.Errorf("executor: only literal expressions supported in INSERT")
		}

		col := schema.Columns[i]
		switch col.Type {
		case storage.TypeInt:
			iv, ok := lit.Value.(int64)
			if !ok {
				return storage.Tuple{}, fmt.Errorf("executor: column %s expects INT, got %T", col.Name, lit.Value)
			}
			values[i] = storage.IntValue(iv)
		case storage.TypeVarchar:
			sv, ok := lit.Value.(string)
			if !ok {
				return storage.Tuple{}, fmt.Errorf("executor: column %s expects VARCHAR, got %T", col.Name, lit.Value)
			}
			values[i] = storage.StringValue(sv)
		default:
			return storage.Tuple{}, fmt.Errorf("executor: unsupported column type for %s", col.Name)
		}
	}
	return storage.Tuple{Values: values}, nil
}

// SequentialScanExecutor walks pages 0..totalPages, prefetching
// prefetchPages of them at a time so disk I/O for page n+1..n+k overlaps
// CPU decoding of page n.
type SequentialScanExecutor struct {
	stmt    *parser.SelectStmt
	catalog *catalog.Catalog
	pool    *bufferpool.Manager
}

func (e *SequentialScanExecutor) Execute() (*Result, error) {
	if _, err := e.catalog.GetTable(e.stmt.TableName); err != nil {
		if errors.Is(err, catalog.ErrTableNotFound) {
			return nil, fmt.Errorf("Table '%s' not found.", e.stmt.TableName)
		}
		return nil, err
	}

	var tuples []storage.Tuple
	var fetchErr error

batches:
	for batchStart := 0; batchStart < totalPages; batchStart += prefetchPages {
		batchEnd := batchStart + prefetchPages
		if batchEnd > totalPages {
			batchEnd = totalPages
		}

		s := stream.New()
		for pageID := batchStart; pageID < batchEnd; pageID++ {
			pageID := uint32(pageID)
			s.Go(func() stream.Callback {
				guard, err := e.pool.FetchPage(pageID)
				if err != nil {
					slog.Error("executor: scan fetch failed", "pageID", pageID, "err", err)
					return func() {
						if fetchErr == nil {
							fetchErr = fmt.Errorf("executor: scan halted at page %d: %w", pageID, err)
						}
					}
				}
				return func() {
					guard.View(func(data []byte) {
						page, err := storage.FromBytes(data)
						if err != nil {
							slog.Error("executor: scan decode page failed", "pageID", pageID, "err", err)
							return
						}
						for slot := 0; slot < page.NumTuples(); slot++ {
							raw, err := page.GetTuple(slot)
							if err != nil {
								continue
							}
							tup, err := storage.DecodeTuple(raw)
							if err != nil {
								continue
							}
							tuples = append(tuples, tup)
						}
					})
					guard.Release()
				}
			})
		}
		s.Wait()

		if fetchErr != nil {
			break batches
		}
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	return DataResult(tuples), nil
}
