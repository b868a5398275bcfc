package scheduling

import (
	"time"

	"github.com/sanrasta/psychology/pkg/date"
)

// smallestSchedulableUnit makes the window containment check inclusive of the
// final minute of the requested duration.
const smallestSchedulableUnit = time.Minute

// ResolveSlots filters candidates down to the instants that are legally
// bookable: [candidate, candidate+duration) must lie fully inside one of that
// local day's availability windows and must not overlap any busy interval.
//
// The result is an order-preserving subsequence of candidates. ResolveSlots is
// pure: it performs no I/O and does not mutate its inputs. The only error
// condition is a schedule whose timezone does not resolve.
func ResolveSlots(candidates []time.Time, duration time.Duration, schedule *Schedule, busy []date.Timespan) ([]time.Time, error) {
	location, err := schedule.Location()
	if err != nil {
		return nil, err
	}

	var slots []time.Time

	for _, candidate := range candidates {
		// Recurring windows are defined in the owner's local time, so the
		// candidate's day is determined in the schedule's zone, not the
		// caller's.
		local := candidate.In(location)
		windows := schedule.WindowsForDay(DayOfWeekFromTime(local))
		if len(windows) == 0 {
			continue
		}

		end := candidate.Add(duration)
		lastUnit := end.Add(-smallestSchedulableUnit)

		accepted := false
		for _, window := range windows {
			// The window boundaries are re-derived on the candidate's local
			// calendar date. A naive fixed-offset shift would break when the
			// grid crosses a DST transition.
			windowStart := window.Start.OnDate(local, location)
			windowEnd := window.End.OnDate(local, location)

			if date.TimeAfterOrEquals(candidate, windowStart) &&
				date.TimeBeforeOrEquals(lastUnit, windowEnd) {
				accepted = true
				break
			}
		}

		if !accepted {
			continue
		}

		requested := date.Timespan{Start: candidate, End: end}
		blocked := false
		for _, busyInterval := range busy {
			if requested.IntersectsWith(busyInterval) {
				blocked = true
				break
			}
		}

		if !blocked {
			slots = append(slots, candidate)
		}
	}

	return slots, nil
}
