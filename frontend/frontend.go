package frontend

import "embed"

// StaticFiles holds the submission form served at the site root
//
//go:embed dist
var StaticFiles embed.FS
