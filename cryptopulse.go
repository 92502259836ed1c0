package cryptopulse

import "embed"

//go:embed migrations
var MigrationsFS embed.FS
