// Command blogcrm serves the blog admin panel.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eringen/blogcrm"
	"github.com/eringen/blogcrm/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("blogcrm %s\n", version)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := blogcrm.LoadConfig()
	if err != nil {
		return err
	}
	log := blogcrm.NewLogger(cfg.LogLevel, cfg.LogFormat)

	app := blogcrm.New(cfg, views.Funcs(), blogcrm.WithLogger(log))
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func printUsage() {
	fmt.Println(`blogcrm - admin panel for blog posts and categories

Usage:
  blogcrm            Start the server (configured through the environment or .env)
  blogcrm version    Print the version
  blogcrm help       Show this help message

Environment:
  ADMIN_EMAIL, ADMIN_PASSWORD or ADMIN_PASSWORD_HASH, SESSION_SECRET, JWT_SECRET
  DATABASE_DRIVER (sqlite|postgres), DATABASE_URL, ADDR, LOG_LEVEL, LOG_FORMAT`)
}
