// Package db embeds the postgres schema migrations so the migrate
// binary ships them without needing files on disk
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
