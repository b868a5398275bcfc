package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanrasta/psychology/pkg/date"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayOfWeek is one of the seven canonical day identifiers
type DayOfWeek string

// The canonical days, in calendar week order
const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DaysOfWeek lists all days, Monday first, to match the recurring schedule convention
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek canonicalizes a day label and rejects anything outside the
// closed enumeration. Persisted rows carrying the legacy "wendesday"
// misspelling fail here on purpose, so they get flagged instead of silently
// reconciled.
func ParseDayOfWeek(value string) (DayOfWeek, error) {
	normalized := DayOfWeek(strings.ToLower(strings.TrimSpace(value)))
	for _, day := range DaysOfWeek {
		if day == normalized {
			return day, nil
		}
	}

	return "", fmt.Errorf("unknown day of week %q", value)
}

// DayOfWeekFromTime maps a concrete instant onto its DayOfWeek label
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	return DayOfWeek(strings.ToLower(t.Weekday().String()))
}

// AvailabilityWindow is a recurring [Start, End) wall-clock window on one day
// of the week. It is not tied to a calendar date.
type AvailabilityWindow struct {
	Day   DayOfWeek      `json:"dayOfWeek" bson:"dayOfWeek" validate:"required"`
	Start date.TimeOfDay `json:"startTime" bson:"startTime"`
	End   date.TimeOfDay `json:"endTime" bson:"endTime"`
}

// Schedule is the recurring weekly availability of one owner: a timezone plus,
// per day of week, zero or more non-overlapping windows. A save replaces the
// window set wholesale.
type Schedule struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id"`
	OwnerID        string               `json:"ownerId" bson:"ownerId" validate:"required"`
	Timezone       string               `json:"timezone" bson:"timezone" validate:"required"`
	Windows        []AvailabilityWindow `json:"windows" bson:"windows"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	LastModifiedAt time.Time            `json:"lastModifiedAt" bson:"lastModifiedAt"`
}

// Location resolves the schedule's IANA timezone name
func (s *Schedule) Location() (*time.Location, error) {
	location, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}

	return location, nil
}

// WindowsForDay returns the windows of a single day, in declaration order
func (s *Schedule) WindowsForDay(day DayOfWeek) []AvailabilityWindow {
	var windows []AvailabilityWindow
	for _, window := range s.Windows {
		if window.Day == day {
			windows = append(windows, window)
		}
	}

	return windows
}

// Validate checks the schedule's internal consistency: timezone, day labels
// and per-day window overlap. All problems are collected.
func (s *Schedule) Validate() []ValidationError {
	var validationErrors []ValidationError

	if _, err := s.Location(); err != nil {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "timezone",
			Message: err.Error(),
		})
	}

	for index, window := range s.Windows {
		if _, err := ParseDayOfWeek(string(window.Day)); err != nil {
			validationErrors = append(validationErrors, ValidationError{
				WindowIndex: index,
				Field:       "dayOfWeek",
				Message:     err.Error(),
			})
		}
	}

	validationErrors = append(validationErrors, ValidateWindows(s.Windows)...)

	return validationErrors
}
