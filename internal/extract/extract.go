// Package extract turns free-form rental requests ("need the A7M4 from
// 2024-09-12 for 5 days, ship to ...") into structured booking input.
package extract

import (
	"context"
	"fmt"
	"time"

	"device-rental-manager/internal/config"
	"device-rental-manager/internal/domain"
)

// Result is what an extractor could recover from the text. Start is always
// set; End and DurationDays may both be zero when the text named no end
// bound, in which case the caller applies its fallback duration.
type Result struct {
	Start        time.Time
	End          time.Time
	DurationDays int
	Address      string
}

type Extractor interface {
	Extract(ctx context.Context, text string) (*Result, error)
}

// New builds the extractor selected by the config. The heuristic mode needs
// no credentials; the openai mode requires an API key.
func New(cfg config.ExtractConfig) (Extractor, error) {
	switch cfg.Mode {
	case "heuristic":
		return NewHeuristic(), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("extract mode %q requires an API key", cfg.Mode)
		}
		return NewOpenAI(cfg.Endpoint, cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: unknown extract mode %q", domain.ErrExtractionFailed, cfg.Mode)
	}
}
