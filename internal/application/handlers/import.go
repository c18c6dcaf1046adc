package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/nvall/chronoline/internal/domain/services"
	"github.com/nvall/chronoline/internal/infrastructure/parsers"
)

// ImportHandler handles seeding a section's events from a file.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Errors   []services.ImportError
}

// Handle imports events from a file into a section.
func (h *ImportHandler) Handle(ctx context.Context, section, filePath string, by services.Submitter, opts ImportOptions) (*ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rawEvents, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	if len(rawEvents) == 0 {
		return &ImportResult{}, nil
	}

	serviceResult, err := h.service.Import(ctx, section, rawEvents, by, services.ImportOptions{DryRun: opts.DryRun})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Imported: serviceResult.Imported,
		Errors:   serviceResult.Errors,
	}, nil
}
