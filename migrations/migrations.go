// Package migrations embeds the goose SQL migrations so the server binary
// and the test helpers apply the same schema without a filesystem dependency.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
