package data

import "embed"

// The embedded dataset snapshot. Layout mirrors the data pipeline's output:
//
//	embedded/index.json
//	embedded/char_index.json
//	embedded/scripts.json
//	embedded/alphabets/<lang>_<Script>.json
//	embedded/freq/<lang>.txt
//
//go:embed embedded
var embeddedFS embed.FS

const embeddedRoot = "embedded"
