// Package migrations ships the schema files for the SQL-backed slot stores.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
