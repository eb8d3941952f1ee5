package migrations

import "embed"

// FS contains embedded SQLite migrations for skill storage.
//
//go:embed *.sql
var FS embed.FS
