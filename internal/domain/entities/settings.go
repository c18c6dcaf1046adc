package entities

import "fmt"

// FieldMode governs whether a submission-form field is required, optional or
// hidden for a section.
type FieldMode string

const (
	FieldMandatory FieldMode = "mandatory"
	FieldOptional  FieldMode = "optional"
	FieldHidden    FieldMode = "hidden"
)

// Default timeline bounds for a freshly created section.
const (
	DefaultTimelineStart = 1900
	DefaultTimelineEnd   = 2030
)

// SectionSettings holds teacher-owned configuration for one section.
// Settings are mutated directly, with no moderation step.
type SectionSettings struct {
	Section string `json:"section"`

	TimelineStart int `json:"timeline_start"`
	TimelineEnd   int `json:"timeline_end"`

	CompellingQuestion string `json:"compelling_question,omitempty"`
	ShowQuestion       bool   `json:"show_question"`

	// FieldModes maps submission-form field names to their requirement mode.
	// Fields absent from the map are optional.
	FieldModes map[string]FieldMode `json:"field_modes,omitempty"`
}

// Mode returns the configured mode for a field, defaulting to optional.
func (s *SectionSettings) Mode(field string) FieldMode {
	if m, ok := s.FieldModes[field]; ok {
		return m
	}
	return FieldOptional
}

// Validate checks the bounds invariant.
func (s *SectionSettings) Validate() error {
	if s.TimelineEnd <= s.TimelineStart {
		return fmt.Errorf("timeline bounds must satisfy end > start: [%d, %d]", s.TimelineStart, s.TimelineEnd)
	}
	return nil
}

// AlignBounds widens a year range outward to decade boundaries.
func AlignBounds(start, end int) (int, int) {
	alignedStart := floorDecade(start)
	alignedEnd := end
	if end%10 != 0 {
		alignedEnd = floorDecade(end) + 10
	}
	return alignedStart, alignedEnd
}

func floorDecade(y int) int {
	d := y % 10
	if d < 0 {
		d += 10
	}
	return y - d
}

// DefaultSettings returns the settings a section starts with.
func DefaultSettings(section string) *SectionSettings {
	return &SectionSettings{
		Section:       section,
		TimelineStart: DefaultTimelineStart,
		TimelineEnd:   DefaultTimelineEnd,
	}
}
