// Package migrations embeds the MongoDB command migrations applied at startup.
package migrations

import "embed"

//go:embed *.json
var FS embed.FS
