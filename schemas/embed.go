// Package schemas embeds the SQL migrations of the review log database.
package schemas

import "embed"

// Migrations holds migrations/*.sql, applied in file name order by database.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
