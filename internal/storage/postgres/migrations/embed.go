package migrations

import "embed"

// FS contains embedded Postgres migrations for list storage.
//
//go:embed *.sql
var FS embed.FS
