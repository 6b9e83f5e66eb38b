package store

import "embed"

// MigrationFS embeds SQL migration files from internal/store/migrations.
// Used by the migrate runner (cmd/migrate and app startup) to apply migrations.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
