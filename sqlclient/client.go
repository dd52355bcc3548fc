// Package sqlclient is a synchronous TCP client for the ringdb wire
// protocol, grounded on the teacher's sqlclient.Client (dial, lock around
// one in-flight request, Exec returns an executor.Result).
package sqlclient

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ringdb/ringdb/internal/sql/executor"
	"github.com/ringdb/ringdb/server/wireproto"
)

// Client is a single-connection, synchronous client. Exec calls serialize
// on an internal mutex; callers wanting concurrency should use one Client
// per connection.
type Client struct {
	conn      net.Conn
	mu        sync.Mutex
	rwTimeout time.Duration
}

// Dial opens a TCP connection to addr.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	return DialContext(context.Background(), addr, timeout)
}

// DialContext is Dial with a caller-supplied context for the dial itself.
func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// SetRWTimeout sets a per-Exec read/write deadline (0 disables it).
func (c *Client) SetRWTimeout(d time.Duration) {
	c.rwTimeout = d
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Exec sends one SQL statement and waits for its response.
func (c *Client) Exec(sql string) (*executor.Result, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("sqlclient: nil client")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rwTimeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
		defer func() { _ = c.conn.SetDeadline(time.Time{}) }()
	}

	if err := wireproto.WriteFrame(c.conn, []byte(sql)); err != nil {
		return nil, err
	}

	payload, err := wireproto.ReadFrame(c.conn)
	if err != nil {
		return nil, err
	}
	return wireproto.DecodeResult(payload)
}
