// Package migrations embeds the SQL schema migrations so both the API
// and worker binaries can run them at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
