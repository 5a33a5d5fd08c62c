package appfs

import "embed"

// FS embeds the goose migrations so the binary carries its own schema.
//go:embed migrations
var FS embed.FS
