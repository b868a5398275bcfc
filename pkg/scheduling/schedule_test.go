package scheduling

import (
	"testing"
	"time"

	"github.com/sanrasta/psychology/pkg/date"
)

func TestParseDayOfWeek(t *testing.T) {
	var parseTests = []struct {
		in      string
		out     DayOfWeek
		wantErr bool
	}{
		{"monday", Monday, false},
		{"Sunday", Sunday, false},
		{"  friday ", Friday, false},
		{"wednesday", Wednesday, false},
		// The misspelling that crept into persisted rows is flagged, not
		// silently mapped onto wednesday
		{"wendesday", "", true},
		{"someday", "", true},
		{"", "", true},
	}

	for _, tt := range parseTests {
		day, err := ParseDayOfWeek(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDayOfWeek(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}

		if !tt.wantErr && day != tt.out {
			t.Errorf("ParseDayOfWeek(%q) = %q, want %q", tt.in, day, tt.out)
		}
	}
}

func TestDaysOfWeek_Order(t *testing.T) {
	if DaysOfWeek[0] != Monday || DaysOfWeek[6] != Sunday {
		t.Errorf("week must run monday through sunday, got %v", DaysOfWeek)
	}

	if len(DaysOfWeek) != 7 {
		t.Errorf("expected 7 days, got %d", len(DaysOfWeek))
	}
}

func TestDayOfWeekFromTime(t *testing.T) {
	// 2024-01-01 is a Monday
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := DayOfWeekFromTime(monday); got != Monday {
		t.Errorf("DayOfWeekFromTime = %q, want %q", got, Monday)
	}
}

func TestSchedule_WindowsForDay(t *testing.T) {
	schedule := Schedule{
		Timezone: "UTC",
		Windows: []AvailabilityWindow{
			{Day: Monday, Start: date.TimeOfDay{Hour: 9}, End: date.TimeOfDay{Hour: 12}},
			{Day: Tuesday, Start: date.TimeOfDay{Hour: 9}, End: date.TimeOfDay{Hour: 12}},
			{Day: Monday, Start: date.TimeOfDay{Hour: 14}, End: date.TimeOfDay{Hour: 17}},
		},
	}

	windows := schedule.WindowsForDay(Monday)
	if len(windows) != 2 {
		t.Fatalf("expected 2 monday windows, got %d", len(windows))
	}

	if windows[0].Start.Hour != 9 || windows[1].Start.Hour != 14 {
		t.Errorf("windows must keep declaration order, got %v", windows)
	}

	if got := schedule.WindowsForDay(Sunday); got != nil {
		t.Errorf("expected no sunday windows, got %v", got)
	}
}

func TestSchedule_Validate(t *testing.T) {
	valid := Schedule{
		Timezone: "Europe/Berlin",
		Windows: []AvailabilityWindow{
			{Day: Monday, Start: date.TimeOfDay{Hour: 9}, End: date.TimeOfDay{Hour: 17}},
		},
	}

	if validationErrors := valid.Validate(); len(validationErrors) != 0 {
		t.Errorf("expected no errors, got %v", validationErrors)
	}

	badZone := Schedule{Timezone: "Mars/Olympus"}
	if validationErrors := badZone.Validate(); len(validationErrors) != 1 {
		t.Errorf("expected a timezone error, got %v", validationErrors)
	}

	badDay := Schedule{
		Timezone: "UTC",
		Windows: []AvailabilityWindow{
			{Day: DayOfWeek("wendesday"), Start: date.TimeOfDay{Hour: 9}, End: date.TimeOfDay{Hour: 17}},
		},
	}

	validationErrors := badDay.Validate()
	if len(validationErrors) != 1 {
		t.Fatalf("expected one day label error, got %v", validationErrors)
	}

	if validationErrors[0].WindowIndex != 0 || validationErrors[0].Field != "dayOfWeek" {
		t.Errorf("error must point at the offending window, got %+v", validationErrors[0])
	}
}
