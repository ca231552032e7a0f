// Package migrations holds the versioned SQL schema. The files are
// embedded so the server and the migrate CLI ship without a migrations
// directory on disk.
package migrations

import "embed"

// FS contains every NNNNNN_name.{up,down}.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
