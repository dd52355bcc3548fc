package wireproto

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"

	"github.com/sourcegraph/conc/pool"

	"github.com/ringdb/ringdb/internal/affinity"
	"github.com/ringdb/ringdb/pkg/database"
)

// Config bundles the listener address and the database the server
// executes statements against.
type Config struct {
	Addr    string
	DB      *database.Database
	Workers int // 0 = affinity.NumCPU()
}

// Run accepts connections on Config.Addr and dispatches each to a
// worker from a fixed pool, one goroutine per CPU core by default. Before
// serving a connection the worker pins its OS thread via internal/affinity
// to core (connection number mod worker count); two connections served at
// the same time can therefore share a core. The listener stops and
// every in-flight connection is asked to wind down on SIGINT/SIGTERM.
func Run(cfg Config) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("wireproto: listen %s: %w", cfg.Addr, err)
	}
	defer func() { _ = ln.Close() }()

	workers := cfg.Workers
	if workers <= 0 {
		workers = affinity.NumCPU()
	}

	slog.Info("wireproto: listening", "addr", cfg.Addr, "workers", workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	p := pool.New().WithMaxGoroutines(workers)
	coreNext := 0

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				p.Wait()
				return nil
			default:
			}
			slog.Warn("wireproto: accept failed", "err", err)
			continue
		}

		core := coreNext % workers
		coreNext++

		p.Go(func() {
			if err := affinity.Pin(core); err != nil {
				slog.Debug("wireproto: core pin failed", "core", core, "err", err)
			}
			handleConn(ctx, conn, cfg.DB)
		})
	}
}

func handleConn(ctx context.Context, conn net.Conn, db *database.Database) {
	defer func() { _ = conn.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, err := ReadFrame(conn)
		if err != nil {
			return
		}

		res, execErr := db.RunStatement(string(payload))
		encoded := EncodeResult(res, execErr)

		if err := WriteFrame(conn, encoded); err != nil {
			return
		}
	}
}
