package migrations

import "embed"

// Files holds the journal schema as numbered SQL files. internal/db applies them in
// order and records each version in schema_migrations.
//
//go:embed *.sql
var Files embed.FS
