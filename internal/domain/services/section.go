package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/ports"
)

// SectionService manages teacher-owned configuration: periods, timeline
// bounds, the compelling question and field modes. None of it is subject to
// moderation.
type SectionService struct {
	store ports.DocumentStore
}

// NewSectionService creates a new SectionService.
func NewSectionService(store ports.DocumentStore) *SectionService {
	return &SectionService{store: store}
}

// Periods lists a section's periods ordered by era start.
func (s *SectionService) Periods(ctx context.Context, section string) ([]entities.Period, error) {
	return s.store.ListPeriods(ctx, section)
}

// AddPeriod validates and stores a new period for a section.
func (s *SectionService) AddPeriod(ctx context.Context, section string, period *entities.Period) (*entities.Period, error) {
	period.Section = section
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("validating period: %w", err)
	}
	if period.ID == "" {
		period.ID = uuid.New().String()
	}
	if err := s.store.SavePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("saving period: %w", err)
	}
	_ = s.store.LogAction(ctx, "period.saved", period.ID, map[string]any{
		"section": section,
		"label":   period.Label,
	})
	return period, nil
}

// RemovePeriod deletes a period by id.
func (s *SectionService) RemovePeriod(ctx context.Context, id string) error {
	if err := s.store.DeletePeriod(ctx, id); err != nil {
		return fmt.Errorf("deleting period: %w", err)
	}
	_ = s.store.LogAction(ctx, "period.removed", id, nil)
	return nil
}

// SeedPeriods copies the default period template into a section that has
// no periods yet. Seeding an already-populated section is a no-op.
func (s *SectionService) SeedPeriods(ctx context.Context, section string) (int, error) {
	existing, err := s.store.ListPeriods(ctx, section)
	if err != nil {
		return 0, fmt.Errorf("listing periods: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	defaults, err := s.store.ListDefaultPeriods(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing default periods: %w", err)
	}
	for _, tpl := range defaults {
		p := tpl
		p.ID = uuid.New().String()
		p.Section = section
		if err := s.store.SavePeriod(ctx, &p); err != nil {
			return 0, fmt.Errorf("seeding period %q: %w", p.Label, err)
		}
	}
	_ = s.store.LogAction(ctx, "section.seeded", "", map[string]any{
		"section": section,
		"periods": len(defaults),
	})
	return len(defaults), nil
}

// Settings returns a section's settings, falling back to defaults for a
// section that has none stored yet.
func (s *SectionService) Settings(ctx context.Context, section string) (*entities.SectionSettings, error) {
	settings, err := s.store.FindSettings(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("finding settings: %w", err)
	}
	if settings == nil {
		return entities.DefaultSettings(section), nil
	}
	return settings, nil
}

// SetBounds stores decade-aligned timeline bounds for a section.
func (s *SectionService) SetBounds(ctx context.Context, section string, start, end int) (*entities.SectionSettings, error) {
	settings, err := s.Settings(ctx, section)
	if err != nil {
		return nil, err
	}
	settings.TimelineStart, settings.TimelineEnd = entities.AlignBounds(start, end)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validating bounds: %w", err)
	}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	_ = s.store.LogAction(ctx, "section.bounds_set", "", map[string]any{
		"section": section,
		"start":   settings.TimelineStart,
		"end":     settings.TimelineEnd,
	})
	return settings, nil
}

// SetQuestion stores the compelling question and its visibility.
func (s *SectionService) SetQuestion(ctx context.Context, section, question string, show bool) error {
	settings, err := s.Settings(ctx, section)
	if err != nil {
		return err
	}
	settings.CompellingQuestion = question
	settings.ShowQuestion = show
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	_ = s.store.LogAction(ctx, "section.question_set", "", map[string]any{
		"section": section,
		"visible": show,
	})
	return nil
}

// SetFieldMode stores the requirement mode for one submission-form field.
func (s *SectionService) SetFieldMode(ctx context.Context, section, field string, mode entities.FieldMode) error {
	switch mode {
	case entities.FieldMandatory, entities.FieldOptional, entities.FieldHidden:
	default:
		return fmt.Errorf("invalid field mode: %q", mode)
	}

	settings, err := s.Settings(ctx, section)
	if err != nil {
		return err
	}
	if settings.FieldModes == nil {
		settings.FieldModes = make(map[string]entities.FieldMode)
	}
	settings.FieldModes[field] = mode
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
