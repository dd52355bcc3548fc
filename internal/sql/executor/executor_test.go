package executor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringdb/ringdb/internal/bufferpool"
	"github.com/ringdb/ringdb/internal/catalog"
	"github.com/ringdb/ringdb/internal/sql/parser"
	"github.com/ringdb/ringdb/internal/storage"
)

func newTestEnv(t *testing.T) (*catalog.Catalog, *bufferpool.Manager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "executor_test.db")
	dm, err := storage.NewDiskManager(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })
	return catalog.New(), bufferpool.NewManager(dm, 8)
}

func mustParse(t *testing.T, sql string) parser.Statement {
	t.Helper()
	stmt, err := parser.Parse(sql)
	require.NoError(t, err)
	return stmt
}

func run(t *testing.T, cat *catalog.Catalog, pool *bufferpool.Manager, sql string) (*Result, error) {
	t.Helper()
	stmt := mustParse(t, sql)
	ex, err := NewExecutor(stmt, cat, pool)
	require.NoError(t, err)
	return ex.Execute()
}

func TestExecutor_CreateInsertSelect_RoundTrip(t *testing.T) {
	cat, pool := newTestEnv(t)

	res, err := run(t, cat, pool, "CREATE TABLE users (id INT, name VARCHAR);")
	require.NoError(t, err)
	assert.Equal(t, "Table 'users' created.", res.Message)

	res, err = run(t, cat, pool, "INSERT INTO users VALUES (1, 'Alice');")
	require.NoError(t, err)
	assert.Equal(t, "1 row inserted.", res.Message)

	res, err = run(t, cat, pool, "SELECT id, name FROM users;")
	require.NoError(t, err)
	require.True(t, res.IsData)
	require.Len(t, res.Tuples, 1)
	assert.Equal(t, int64(1), res.Tuples[0].Values[0].Int())
	assert.Equal(t, "Alice", res.Tuples[0].Values[1].Str())
}

func TestExecutor_DuplicateCreateTable(t *testing.T) {
	cat, pool := newTestEnv(t)

	_, err := run(t, cat, pool, "CREATE TABLE t (a INT);")
	require.NoError(t, err)

	_, err = run(t, cat, pool, "CREATE TABLE t (a INT);")
	require.Error(t, err)
	assert.Equal(t, "Table 't' already exists.", err.Error())
}

func TestExecutor_InsertIntoUnknownTable(t *testing.T) {
	cat, pool := newTestEnv(t)

	_, err := run(t, cat, pool, "INSERT INTO missing VALUES (1);")
	require.Error(t, err)
	assert.Equal(t, "Table 'missing' not found.", err.Error())
}

func TestExecutor_PageFill(t *testing.T) {
	cat, pool := newTestEnv(t)

	_, err := run(t, cat, pool, "CREATE TABLE t (v VARCHAR);")
	require.NoError(t, err)

	padding := make([]byte, 500)
	for i := range padding {
		padding[i] = 'x'
	}
	value := string(padding)

	var lastErr error
	inserted := 0
	for i := 0; i < 50; i++ {
		_, err := run(t, cat, pool, "INSERT INTO t VALUES ('"+value+"');")
		if err != nil {
			lastErr = err
			break
		}
		inserted++
	}

	require.Error(t, lastErr)
	assert.Equal(t, "Failed to insert tuple: page is full.", lastErr.Error())
	assert.Greater(t, inserted, 0)

	res, err := run(t, cat, pool, "SELECT v FROM t;")
	require.NoError(t, err)
	assert.Len(t, res.Tuples, inserted)
}

func TestExecutor_ScanOrdering(t *testing.T) {
	cat, pool := newTestEnv(t)

	_, err := run(t, cat, pool, "CREATE TABLE users (id INT, name VARCHAR);")
	require.NoError(t, err)

	_, err = run(t, cat, pool, "INSERT INTO users VALUES (1, 'a');")
	require.NoError(t, err)
	_, err = run(t, cat, pool, "INSERT INTO users VALUES (2, 'b');")
	require.NoError(t, err)
	_, err = run(t, cat, pool, "INSERT INTO users VALUES (3, 'c');")
	require.NoError(t, err)

	res, err := run(t, cat, pool, "SELECT id, name FROM users;")
	require.NoError(t, err)
	require.Len(t, res.Tuples, 3)

	wantIDs := []int64{1, 2, 3}
	wantNames := []string{"a", "b", "c"}
	for i, tup := range res.Tuples {
		assert.Equal(t, wantIDs[i], tup.Values[0].Int())
		assert.Equal(t, wantNames[i], tup.Values[1].Str())
	}
}

func TestExecutor_ScanEmptyTable(t *testing.T) {
	cat, pool := newTestEnv(t)

	_, err := run(t, cat, pool, "CREATE TABLE empty (a INT);")
	require.NoError(t, err)

	res, err := run(t, cat, pool, "SELECT a FROM empty;")
	require.NoError(t, err)
	assert.Empty(t, res.Tuples)
}
