package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses events from JSON format.
type JSONParser struct{}

// Parse reads a JSON array from the reader and returns parsed events.
func (p *JSONParser) Parse(r io.Reader) ([]RawEvent, error) {
	var events []RawEvent

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&events); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range events {
		events[i].LineNum = i + 1
	}

	return events, nil
}
