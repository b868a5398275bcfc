package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, e.g. the boundary of a
// recurring availability window. It is only ever constructed from a validated
// "HH:MM" 24-hour string.
type TimeOfDay struct {
	Hour   int `json:"hour" bson:"hour"`
	Minute int `json:"minute" bson:"minute"`
}

// ParseTimeOfDay parses a "HH:MM" 24-hour string into a TimeOfDay.
// time.Parse alone would accept single digit hours, so the shape is checked
// first.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if len(value) != 5 || value[2] != ':' {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, must be HH:MM in 24-hour format", value)
	}

	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, must be HH:MM in 24-hour format", value)
	}

	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// MinuteOfDay returns the total order key of a TimeOfDay
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// Before checks if t is strictly earlier than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.MinuteOfDay() < other.MinuteOfDay()
}

// String prints a TimeOfDay back in its HH:MM form
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// OnDate resolves the wall-clock time into an absolute instant on the local
// calendar date of reference, in the given location. Going through time.Date
// keeps the boundary correct across DST transitions.
func (t TimeOfDay) OnDate(reference time.Time, location *time.Location) time.Time {
	local := reference.In(location)
	year, month, day := local.Date()
	return time.Date(year, month, day, t.Hour, t.Minute, 0, 0, location)
}

// MarshalJSON marshals a TimeOfDay into its "HH:MM" form
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a TimeOfDay from its "HH:MM" form
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
