package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/staffing/db"
	"github.com/garnizeh/staffing/internal/config"
	"github.com/garnizeh/staffing/internal/db"
	"github.com/garnizeh/staffing/internal/repository/sqlstore"
	"github.com/garnizeh/staffing/internal/seed"
	"github.com/garnizeh/staffing/pkg/models"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	withSample := flag.Bool("seed", false, "Load the sample dataset after migrating")
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
	database, err := db.New(ctx, dialect, cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}
	missing, unexpected, err := db.VerifyTables(ctx, database, models.Tables())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verify error: %v\n", err)
		os.Exit(1)
	}
	if len(unexpected) > 0 {
		fmt.Printf("Unexpected tables: %v\n", unexpected)
	}
	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Missing tables: %v\n", missing)
		os.Exit(1)
	}

	if *withSample {
		ds, err := seed.Sample(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		sum, err := seed.NewLoader(sqlstore.New(database, nil), nil, nil).Load(ctx, ds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d rows.\n", sum.Total())
	}

	fmt.Println("Database initialized successfully.")
}
