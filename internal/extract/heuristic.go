package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

var (
	datePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	durationPattern = regexp.MustCompile(`(\d+)\s*(?:days?|日|天)`)
	// Address text follows a marker word and runs to the next comma-ish
	// separator or the end of the line.
	addressPattern = regexp.MustCompile(`(?:地址|送到|寄到|配送至|address[:：]?|deliver(?:y)?\s+to|ship\s+to)[:：\s]*([^,，。;；\n]+)`)
)

type heuristic struct{}

// NewHeuristic returns the regex-based extractor. It understands ISO dates,
// "N days" / "N 天" durations and common address markers, which covers the
// bulk of real requests without any external service.
func NewHeuristic() Extractor {
	return heuristic{}
}

func (heuristic) Extract(_ context.Context, text string) (*Result, error) {
	dates := datePattern.FindAllString(text, 2)
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no start date found in %q", domain.ErrExtractionFailed, text)
	}

	res := &Result{}
	var err error
	if res.Start, err = schedule.ParseDate(dates[0]); err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", domain.ErrExtractionFailed, dates[0])
	}
	if len(dates) > 1 {
		if res.End, err = schedule.ParseDate(dates[1]); err != nil {
			return nil, fmt.Errorf("%w: bad end date %q", domain.ErrExtractionFailed, dates[1])
		}
	}

	if m := durationPattern.FindStringSubmatch(text); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			res.DurationDays = n
		}
	}

	if m := addressPattern.FindStringSubmatch(text); m != nil {
		res.Address = strings.TrimSpace(m[1])
	}
	return res, nil
}

// EndBound resolves the extracted end of the rental: an explicit end date
// wins, then a duration, then the caller's fallback day count.
func (r *Result) EndBound(fallbackDays int) time.Time {
	if !r.End.IsZero() {
		return r.End
	}
	days := r.DurationDays
	if days <= 0 {
		days = fallbackDays
	}
	return schedule.Day(r.Start).AddDate(0, 0, days)
}
