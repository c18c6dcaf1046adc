package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validEvent() *Event {
	return &Event{
		ID:         "ev-1",
		Section:    "period-3",
		Year:       1945,
		Title:      "End of the Second World War",
		Tags:       []string{"war"},
		SourceType: SourceSecondary,
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Event)
		wantErr string
	}{
		{
			name:   "valid point event",
			mutate: func(e *Event) {},
		},
		{
			name: "valid range event",
			mutate: func(e *Event) {
				end := 1950
				e.EndYear = &end
			},
		},
		{
			name:    "year zero",
			mutate:  func(e *Event) { e.Year = 0 },
			wantErr: "start date",
		},
		{
			name: "day without month",
			mutate: func(e *Event) {
				e.Day = 9
			},
			wantErr: "day requires month",
		},
		{
			name: "end before start",
			mutate: func(e *Event) {
				end := 1940
				e.EndYear = &end
			},
			wantErr: "end date precedes start date",
		},
		{
			name:    "missing title",
			mutate:  func(e *Event) { e.Title = "" },
			wantErr: "title is required",
		},
		{
			name:    "missing tags",
			mutate:  func(e *Event) { e.Tags = nil },
			wantErr: "tag",
		},
		{
			name:    "bad source type",
			mutate:  func(e *Event) { e.SourceType = "tertiary" },
			wantErr: "source type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestEvent_RangeAndProposal(t *testing.T) {
	e := validEvent()
	assert.False(t, e.IsRange())
	assert.False(t, e.IsProposal())

	_, ok := e.End()
	assert.False(t, ok)

	end := 1950
	e.EndYear = &end
	e.EndMonth = 5
	assert.True(t, e.IsRange())
	endDate, ok := e.End()
	assert.True(t, ok)
	assert.Equal(t, 1950, endDate.Year)
	assert.Equal(t, 5, endDate.Month)

	e.EditOf = "ev-0"
	assert.True(t, e.IsProposal())
}

func TestConnection_Validate(t *testing.T) {
	conn := &Connection{CauseEventID: "a", EffectEventID: "b"}
	assert.NoError(t, conn.Validate())

	assert.Error(t, (&Connection{CauseEventID: "a"}).Validate())
	assert.Error(t, (&Connection{CauseEventID: "a", EffectEventID: "a"}).Validate())
	assert.Error(t, (&Connection{
		CauseEventID: "a", EffectEventID: "b",
		EditOf: "c1", DeleteOf: "c2",
	}).Validate())
}

func TestConnection_OtherAndInvolves(t *testing.T) {
	conn := &Connection{CauseEventID: "a", EffectEventID: "b"}

	assert.Equal(t, "b", conn.Other("a"))
	assert.Equal(t, "a", conn.Other("b"))
	assert.Equal(t, "", conn.Other("c"))

	assert.True(t, conn.Involves("a"))
	assert.True(t, conn.Involves("b"))
	assert.False(t, conn.Involves("c"))
}

func TestPeriod_Validate(t *testing.T) {
	p := &Period{Label: "Cold War", StartYear: 1947, EndYear: 1991}
	assert.NoError(t, p.Validate())
	assert.Equal(t, 44, p.Span())
	assert.True(t, p.Contains(1960))
	assert.False(t, p.Contains(1995.5))

	assert.Error(t, (&Period{StartYear: 1947, EndYear: 1991}).Validate())
	assert.Error(t, (&Period{Label: "x", StartYear: 1991, EndYear: 1947}).Validate())
}
