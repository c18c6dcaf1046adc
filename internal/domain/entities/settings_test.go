package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantStart  int
		wantEnd    int
	}{
		{
			name:  "already aligned",
			start: 1900, end: 2030,
			wantStart: 1900, wantEnd: 2030,
		},
		{
			name:  "widens outward",
			start: 1997, end: 2014,
			wantStart: 1990, wantEnd: 2020,
		},
		{
			name:  "negative years floor toward bce",
			start: -509, end: 1991,
			wantStart: -510, wantEnd: 2000,
		},
		{
			name:  "negative aligned end stays",
			start: -505, end: -100,
			wantStart: -510, wantEnd: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := AlignBounds(tt.start, tt.end)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSectionSettings_Mode(t *testing.T) {
	s := &SectionSettings{
		FieldModes: map[string]FieldMode{"source_note": FieldMandatory},
	}

	assert.Equal(t, FieldMandatory, s.Mode("source_note"))
	assert.Equal(t, FieldOptional, s.Mode("region"))
}

func TestSectionSettings_Validate(t *testing.T) {
	assert.NoError(t, (&SectionSettings{TimelineStart: 1900, TimelineEnd: 2030}).Validate())
	assert.Error(t, (&SectionSettings{TimelineStart: 2030, TimelineEnd: 2030}).Validate())
	assert.Error(t, (&SectionSettings{TimelineStart: 2030, TimelineEnd: 1900}).Validate())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("period-3")
	assert.Equal(t, "period-3", s.Section)
	assert.Equal(t, DefaultTimelineStart, s.TimelineStart)
	assert.Equal(t, DefaultTimelineEnd, s.TimelineEnd)
	assert.NoError(t, s.Validate())
}
