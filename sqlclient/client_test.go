package sqlclient

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringdb/ringdb/pkg/database"
	"github.com/ringdb/ringdb/server/wireproto"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.db")
	db, err := database.New(path, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	realAddr := ln.Addr().String()
	require.NoError(t, ln.Close())

	go func() { _ = wireproto.Run(wireproto.Config{Addr: realAddr, DB: db, Workers: 2}) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", realAddr, 50*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return realAddr
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server did not start listening on %s", realAddr)
	return ""
}

func TestClient_CreateInsertSelect(t *testing.T) {
	addr := startTestServer(t)

	cli, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	res, err := cli.Exec("CREATE TABLE users (id INT, name VARCHAR);")
	require.NoError(t, err)
	assert.Equal(t, "Table 'users' created.", res.Message)

	res, err = cli.Exec("INSERT INTO users VALUES (1, 'Alice');")
	require.NoError(t, err)
	assert.Equal(t, "1 row inserted.", res.Message)

	res, err = cli.Exec("SELECT id, name FROM users;")
	require.NoError(t, err)
	require.Len(t, res.Tuples, 1)
	assert.Equal(t, "Alice", res.Tuples[0].Values[1].Str())
}

func TestClient_ErrorSurfacesAsGoError(t *testing.T) {
	addr := startTestServer(t)

	cli, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = cli.Close() }()

	_, err = cli.Exec("INSERT INTO missing VALUES (1);")
	require.Error(t, err)
	assert.Equal(t, "Table 'missing' not found.", err.Error())
}
