package scheduling

import (
	"fmt"
	"sort"

	"github.com/sanrasta/psychology/pkg/communication"
)

// ErrInvalidSchedule is returned when a schedule fails validation. It is the
// communication sentinel, so the response layer can map it to a client error.
var ErrInvalidSchedule = communication.ErrInvalidSchedule

// ValidationError points at a single offending window of a proposed schedule
type ValidationError struct {
	WindowIndex int    `json:"windowIndex"`
	Field       string `json:"field,omitempty"`
	Message     string `json:"message"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("window %d: %s", e.WindowIndex, e.Message)
}

// ValidateWindows checks a proposed window set for internal consistency
// before it is persisted. It is pure: windows are grouped by day and every
// ordered pair within a day is tested for overlap. Only the first overlap per
// window is reported, but all offending windows are collected, so a form can
// show every problem at once.
func ValidateWindows(windows []AvailabilityWindow) []ValidationError {
	var validationErrors []ValidationError

	type indexedWindow struct {
		AvailabilityWindow
		index int
	}

	byDay := map[DayOfWeek][]indexedWindow{}

	for index, window := range windows {
		if !window.Start.Before(window.End) {
			validationErrors = append(validationErrors, ValidationError{
				WindowIndex: index,
				Field:       "endTime",
				Message:     fmt.Sprintf("end time %s must be after start time %s", window.End, window.Start),
			})
			continue
		}

		byDay[window.Day] = append(byDay[window.Day], indexedWindow{window, index})
	}

	for _, dayWindows := range byDay {
		if len(dayWindows) <= 1 {
			continue
		}

		for i, window := range dayWindows {
			// A window is only checked against the windows declared before it,
			// so one conflict yields one error, on the later window.
			for _, other := range dayWindows[:i] {
				if window.Start.MinuteOfDay() < other.End.MinuteOfDay() &&
					window.End.MinuteOfDay() > other.Start.MinuteOfDay() {
					validationErrors = append(validationErrors, ValidationError{
						WindowIndex: window.index,
						Message:     "overlaps with another window on the same day",
					})
					break
				}
			}
		}
	}

	// Day groups come out of a map, sorting keeps the report deterministic
	sort.SliceStable(validationErrors, func(i, j int) bool {
		return validationErrors[i].WindowIndex < validationErrors[j].WindowIndex
	})

	return validationErrors
}
