package main

// Defaults for CLI commands.
const (
	DefaultRenderOutput  = "timeline.svg"
	DefaultViewportWidth = 1280
)

// Tables the watch command can follow.
var watchableTables = []string{"events", "connections", "periods", "settings"}
