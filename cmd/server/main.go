package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ringdb/ringdb/internal/config"
	"github.com/ringdb/ringdb/pkg/database"
	"github.com/ringdb/ringdb/server/wireproto"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "ringdb.yaml", "path to ringdb yaml config")
	flag.Parse()

	cfg := config.Default()
	if _, err := os.Stat(cfgPath); err == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			slog.Error("load config", "err", err)
			os.Exit(1)
		}
	}

	if cfg.Server.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	db, err := database.New(cfg.Storage.File, cfg.Storage.PoolSize)
	if err != nil {
		slog.Error("open database", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	addr := os.Getenv("RINGDB_ADDR")
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	}

	if err := wireproto.Run(wireproto.Config{Addr: addr, DB: db, Workers: cfg.Server.Workers}); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
