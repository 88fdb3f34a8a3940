package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/garnizeh/staffing/internal/config"
	"github.com/garnizeh/staffing/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	out := flag.String("out", "", "Backup file (default: <database>.bak)")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	src := db.SQLitePath(cfg.Database.DSN)
	if dialect != db.SQLite || src == "" {
		fmt.Fprintln(os.Stderr, "Backup error: only file-backed sqlite databases can be backed up")
		os.Exit(1)
	}
	dst := *out
	if dst == "" {
		dst = src + ".bak"
	}
	// VACUUM INTO refuses to overwrite.
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, dialect, cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Backup(ctx, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup completed: %s\n", dst)
}
