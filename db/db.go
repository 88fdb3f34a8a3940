package db

import "embed"

// Migrations holds one directory of ordered SQL files per dialect:
// migrations/sqlite and migrations/postgres.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

// SeedFiles holds the sample dataset and the JSON Schema it is checked against.
//
//go:embed seed/*.*
var SeedFiles embed.FS
