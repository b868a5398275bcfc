package scheduling

import (
	"time"

	"github.com/sanrasta/psychology/pkg/date"
	"github.com/sanrasta/psychology/pkg/environment"
)

// Owners without a configured schedule are bookable 06:00 to 20:00 every day.
var (
	defaultWindowStart = date.TimeOfDay{Hour: 6}
	defaultWindowEnd   = date.TimeOfDay{Hour: 20}
)

// DefaultWindows generates the fallback window set: one 06:00-20:00 window for
// every day of the week
func DefaultWindows() []AvailabilityWindow {
	windows := make([]AvailabilityWindow, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		windows = append(windows, AvailabilityWindow{
			Day:   day,
			Start: defaultWindowStart,
			End:   defaultWindowEnd,
		})
	}

	return windows
}

// DefaultLocation resolves the timezone default schedules are created in: the
// configured TIMEZONE when set and valid, otherwise the zone the server
// process runs in.
func DefaultLocation() *time.Location {
	if environment.Global.Timezone != "" {
		location, err := time.LoadLocation(environment.Global.Timezone)
		if err == nil {
			return location
		}
	}

	return time.Local
}

// DefaultSchedule builds the schedule substituted when an owner has not
// configured one. The timezone is the one the server process resolves at
// creation time. The same value is used both to persist an owner's first
// schedule and as the transient fallback while none is persisted yet.
func DefaultSchedule(ownerID string, location *time.Location) *Schedule {
	return &Schedule{
		OwnerID:  ownerID,
		Timezone: location.String(),
		Windows:  DefaultWindows(),
	}
}
