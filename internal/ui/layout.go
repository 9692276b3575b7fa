package ui

import "time"

// Terminal width thresholds.
const (
	// LayoutCompactWidth is the width below which the boxes stack vertically.
	LayoutCompactWidth = 90

	// LayoutMinBoxWidth keeps a box readable when split.
	LayoutMinBoxWidth = 30
)

// Log view limits.
const (
	// LogTailLines is how many lines of the log file the log view reads.
	LogTailLines = 500

	// LogRefreshInterval is how often the open log view re-reads the file.
	LogRefreshInterval = 2 * time.Second
)
