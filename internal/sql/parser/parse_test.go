package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CreateTable(t *testing.T) {
	stmt, err := Parse("CREATE TABLE users (id INT, name VARCHAR);")
	require.NoError(t, err)

	ct, ok := stmt.(*CreateTableStmt)
	require.True(t, ok)
	assert.Equal(t, "users", ct.TableName)
	assert.Equal(t, []ColumnDef{{Name: "id", Type: "INT"}, {Name: "name", Type: "VARCHAR"}}, ct.Columns)
}

func TestParse_Insert(t *testing.T) {
	stmt, err := Parse("INSERT INTO users VALUES (1, 'Alice');")
	require.NoError(t, err)

	ins, ok := stmt.(*InsertStmt)
	require.True(t, ok)
	assert.Equal(t, "users", ins.TableName)
	require.Len(t, ins.Values, 2)
	assert.Equal(t, int64(1), ins.Values[0].(*LiteralExpr).Value)
	assert.Equal(t, "Alice", ins.Values[1].(*LiteralExpr).Value)
}

func TestParse_Insert_EscapedQuote(t *testing.T) {
	stmt, err := Parse("INSERT INTO t VALUES ('O''Brien');")
	require.NoError(t, err)

	ins := stmt.(*InsertStmt)
	assert.Equal(t, "O'Brien", ins.Values[0].(*LiteralExpr).Value)
}

func TestParse_Select_ColumnList(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users;")
	require.NoError(t, err)

	sel, ok := stmt.(*SelectStmt)
	require.True(t, ok)
	assert.Equal(t, "users", sel.TableName)
	assert.Equal(t, []string{"id", "name"}, sel.Columns)
}

func TestParse_Select_NoTrailingSemicolon(t *testing.T) {
	stmt, err := Parse("SELECT name FROM users")
	require.NoError(t, err)

	sel := stmt.(*SelectStmt)
	assert.Equal(t, []string{"name"}, sel.Columns)
}

func TestParse_AcceptanceSet(t *testing.T) {
	valid := []string{
		"CREATE TABLE users (id INT, name VARCHAR);",
		"INSERT INTO users VALUES (1, 'Alice');",
		"SELECT id, name FROM users;",
		"SELECT name FROM users",
	}
	for _, sql := range valid {
		_, err := Parse(sql)
		assert.NoError(t, err, sql)
	}

	invalid := []string{
		"CREATE users (id INT);",
		"SELECT id, name FROM;",
	}
	for _, sql := range invalid {
		_, err := Parse(sql)
		assert.Error(t, err, sql)
	}
}

func TestParse_EmptyStatement(t *testing.T) {
	_, err := Parse("   ")
	assert.Error(t, err)
}
