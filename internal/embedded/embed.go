// Package embedded provides the compiled-in seed catalog: the fixed city
// list and the initial event records loaded once at process start.
package embedded

import "embed"

// FS contains the embedded seed catalog YAML files.
//
//go:embed catalog/*
var FS embed.FS
