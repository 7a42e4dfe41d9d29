// Package scripts embeds the built-in Risor report scripts.
package scripts

import "embed"

// FS holds report/*.risor.
//
//go:embed report/*.risor
var FS embed.FS
