package postgres

import "embed"

// Migrations holds the schema migrations for the record tables.
//
//go:embed migrations/*.sql
var Migrations embed.FS
