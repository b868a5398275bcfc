package scheduling

import (
	"time"
)

// DefaultStep is the granularity of the candidate grid
const DefaultStep = 15 * time.Minute

// DefaultHorizonDays is how far ahead candidates are generated
const DefaultHorizonDays = 14

// GenerateCandidates produces the ordered sequence of candidate instants to
// test: now rounded up to the next step boundary, through the end of the
// calendar day horizonDays later, inclusive of that day's final representable
// step. now is supplied by the caller to keep the generator deterministic.
func GenerateCandidates(now time.Time, horizonDays int, step time.Duration) []time.Time {
	start := now.Truncate(step)
	if start.Before(now) {
		start = start.Add(step)
	}

	// First instant of the day after the horizon day, so the loop below
	// includes the horizon day's last step.
	lastDay := start.AddDate(0, 0, horizonDays)
	year, month, day := lastDay.Date()
	gridEnd := time.Date(year, month, day, 0, 0, 0, 0, lastDay.Location()).AddDate(0, 0, 1)

	var candidates []time.Time
	for t := start; t.Before(gridEnd); t = t.Add(step) {
		candidates = append(candidates, t)
	}

	return candidates
}
