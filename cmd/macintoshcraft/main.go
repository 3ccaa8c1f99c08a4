// Command macintoshcraft runs a MacintoshCraft server: it loads
// config.toml (creating it with defaults on first run), opens the
// registry store, and drives the tick loop until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
	"github.com/tannerfokkens-maker/MacintoshCraft/server"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the server config file")
	registryPath := flag.String("registry-db", "registry.ldb", "path to the registry leveldb store")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := server.LoadConfig(*configPath, log)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	reg, err := registry.Open(*registryPath)
	if err != nil {
		log.Error("open registry store", "error", err)
		os.Exit(1)
	}
	defer reg.Close()
	if err := registry.Bootstrap(reg); err != nil {
		log.Error("bootstrap registry", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, reg)
	if err := srv.World.LoadFromFile(cfg.PersistencePath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("world load rolled back", "path", cfg.PersistencePath, "error", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting", "addr", cfg.Addr, "max_players", cfg.MaxPlayers)

	stop := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	if err := srv.Run(stop); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
