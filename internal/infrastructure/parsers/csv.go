package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVParser parses events from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed events.
// Expected columns: title, year, plus any of month, day, end_year,
// end_month, end_day, description, tags, source_type, source_note,
// source_url, region.
func (p *CSVParser) Parse(r io.Reader) ([]RawEvent, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	requiredCols := []string{"title", "year"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawEvents.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawEvent, error) {
	var events []RawEvent
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		event, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// parseRecord converts a CSV record to a RawEvent.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawEvent, error) {
	event := RawEvent{
		Title:       getColumn(record, colIndex, "title"),
		Description: getColumn(record, colIndex, "description"),
		Tags:        getColumn(record, colIndex, "tags"),
		SourceType:  getColumn(record, colIndex, "source_type"),
		SourceNote:  getColumn(record, colIndex, "source_note"),
		SourceURL:   getColumn(record, colIndex, "source_url"),
		Region:      getColumn(record, colIndex, "region"),
		LineNum:     lineNum,
	}

	numeric := []struct {
		col  string
		dest *int
	}{
		{"year", &event.Year},
		{"month", &event.Month},
		{"day", &event.Day},
		{"end_year", &event.EndYear},
		{"end_month", &event.EndMonth},
		{"end_day", &event.EndDay},
	}
	for _, n := range numeric {
		raw := getColumn(record, colIndex, n.col)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return RawEvent{}, fmt.Errorf("line %d: invalid %s value %q: %w", lineNum, n.col, raw, err)
		}
		*n.dest = v
	}

	return event, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
