package entities

import (
	"errors"
	"fmt"
)

// Period is a named, colored, contiguous year-range classification assigned
// to events (e.g. "Cold War"). Periods double as the controlled vocabulary
// for Event.PeriodID and as visual bands on the timeline.
type Period struct {
	ID      string `json:"id"`
	Section string `json:"section"` // "" marks a default-template period
	Label   string `json:"label"`

	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`

	Color      string `json:"color"`
	Background string `json:"bg"`
	Accent     string `json:"accent"`
}

// Span returns the era length in years.
func (p *Period) Span() int {
	return p.EndYear - p.StartYear
}

// Contains reports whether the fractional year falls inside the era.
func (p *Period) Contains(fractionalYear float64) bool {
	return fractionalYear >= float64(p.StartYear) && fractionalYear <= float64(p.EndYear)
}

// Validate checks the era invariant.
func (p *Period) Validate() error {
	if p.Label == "" {
		return errors.New("period label is required")
	}
	if p.EndYear <= p.StartYear {
		return fmt.Errorf("period era must end after it starts: [%d, %d]", p.StartYear, p.EndYear)
	}
	return nil
}
