package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/codegangsta/publist/internal/commands"
	"github.com/codegangsta/publist/internal/config"
	"github.com/codegangsta/publist/internal/storage"
	"github.com/codegangsta/publist/internal/telegram"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dbPath := flag.String("db", "", "path to SQLite database (overrides database.path)")
	flag.Parse()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
		os.Exit(1)
	}

	if *configPath == "" {
		*configPath = filepath.Join(homeDir, ".config", "publist", "config.yaml")
	}

	fmt.Println("publist starting...")
	fmt.Printf("Config: %s\n", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	if *dbPath == "" {
		*dbPath = cfg.DatabasePath(homeDir)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("failed to create database directory", "path", *dbPath, "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	count, err := db.Count(context.Background())
	if err != nil {
		slog.Warn("failed to count publications", "error", err)
	}
	slog.Info("config loaded",
		"debug", cfg.Debug,
		"database", *dbPath,
		"publications", count,
		"store_timeout", cfg.StoreTimeout(),
	)

	router := newRouter(db, cfg.StoreTimeout(), time.Now)

	bot, err := telegram.New(cfg.Telegram.Token, slog.Default())
	if err != nil {
		slog.Error("failed to create telegram bot", "error", err)
		os.Exit(1)
	}
	bot.SetHandler(messageHandler(router))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	slog.Info("publist started, connecting to telegram")

	// Start the bot (blocks until context is cancelled)
	if err := bot.Start(ctx); err != nil {
		slog.Error("telegram bot error", "error", err)
		os.Exit(1)
	}
	slog.Info("publist stopped")
}

// newRouter registers the !pub command table
func newRouter(db *storage.DB, timeout time.Duration, now func() time.Time) *commands.Router {
	router := commands.NewRouter(db, timeout, slog.Default())
	router.Register(commands.NewNewCommand(db, now, slog.Default()))
	router.Register(commands.NewReportCommand(db, now, slog.Default()))
	return router
}

// messageHandler runs each chat message through the router and posts
// whatever it answers. Errors are reported to the chat, never fatal.
func messageHandler(router *commands.Router) telegram.MessageHandler {
	return func(ctx context.Context, chatID int64, userID int64, text string, respond telegram.RespondFunc) {
		resp, err := router.Handle(ctx, chatID, text)
		if err != nil {
			slog.Error("command error", "chat_id", chatID, "user_id", userID, "error", err)
			respond(fmt.Sprintf("Error: %v", err), false)
			return
		}
		if resp != nil {
			respond(resp.Text, resp.Silent)
		}
	}
}

// setupLogger configures slog based on config settings
func setupLogger(cfg *config.Config) {
	var level slog.Level
	if cfg.Debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelInfo
	}

	// Determine output destination
	var w io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		// Write to both stdout and file
		w = io.MultiWriter(os.Stdout, f)
	}

	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(w, opts)
	slog.SetDefault(slog.New(handler))
}
