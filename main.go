// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/cliparse"
	"github.com/danielhkuo/contest-hub/db"
	"github.com/danielhkuo/contest-hub/middleware"
	"github.com/danielhkuo/contest-hub/router"
	"github.com/danielhkuo/contest-hub/store"
	"github.com/danielhkuo/contest-hub/store/mongostore"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		slog.Error("token service setup failed", "error", err)
		os.Exit(1)
	}

	// Connect to the document store
	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("database setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(st, tokens)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore connects the configured backend and prepares its indexes or
// tables. The returned func releases the connection.
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.DatabaseType == cliparse.DatabaseMongo {
		client, err := mongostore.Connect(ctx, cfg.DatabaseURL, cfg.DBName)
		if err != nil {
			return store.Store{}, nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			if derr := client.Disconnect(context.Background()); derr != nil {
				slog.Error("mongo disconnect failed", "error", derr)
			}
			return store.Store{}, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("mongo disconnect failed", "error", err)
			}
		}
		return client.Store(), closeFn, nil
	}

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return store.Store{}, nil, err
	}

	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return store.Store{}, nil, err
	}

	// Verify connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return store.Store{}, nil, fmt.Errorf("database ping failed: %w", err)
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return store.Store{}, nil, err
	}

	return db.NewStore(conn, dialect), func() { conn.Close() }, nil
}
