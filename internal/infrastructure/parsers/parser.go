// Package parsers reads bulk event submissions from external files.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEvent is one event row parsed from an import file, before validation.
type RawEvent struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Year        int    `json:"year"`
	Month       int    `json:"month,omitempty"`
	Day         int    `json:"day,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
	EndMonth    int    `json:"end_month,omitempty"`
	EndDay      int    `json:"end_day,omitempty"`
	Tags        string `json:"tags,omitempty"` // comma-separated
	SourceType  string `json:"source_type,omitempty"`
	SourceNote  string `json:"source_note,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	Region      string `json:"region,omitempty"`
	LineNum     int    `json:"-"` // line or array index in the source file
}

// Parser defines the interface for parsing events from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEvent, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
