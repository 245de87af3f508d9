package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tracklink/internal/importer"
)

var titleCaser = cases.Title(language.English)

// statusLabel renders an outcome status for tables, e.g. "Matched".
func statusLabel(status importer.Status) string {
	return titleCaser.String(string(status))
}

// reasonLabel turns a reason key like "no_candidate" into "no candidate".
func reasonLabel(reason string) string {
	return strings.ReplaceAll(reason, "_", " ")
}

// formatDuration renders seconds as m:ss, or "-" when unknown.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// displayPath shortens path relative to root when it lies below it.
func displayPath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func intOrDash(value int) string {
	if value <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", value)
}
