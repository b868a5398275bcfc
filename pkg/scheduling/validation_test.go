package scheduling

import (
	"testing"

	"github.com/sanrasta/psychology/pkg/date"
)

func mustTimeOfDay(t *testing.T, value string) date.TimeOfDay {
	t.Helper()

	parsed, err := date.ParseTimeOfDay(value)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func window(t *testing.T, day DayOfWeek, start string, end string) AvailabilityWindow {
	t.Helper()

	return AvailabilityWindow{Day: day, Start: mustTimeOfDay(t, start), End: mustTimeOfDay(t, end)}
}

func TestValidateWindows(t *testing.T) {
	var validationTests = []struct {
		name       string
		in         []AvailabilityWindow
		wantErrors []ValidationError
	}{
		{
			"no windows",
			nil,
			nil,
		},
		{
			"single window",
			[]AvailabilityWindow{window(t, Monday, "09:00", "17:00")},
			nil,
		},
		{
			"same times on different days don't conflict",
			[]AvailabilityWindow{
				window(t, Monday, "09:00", "17:00"),
				window(t, Tuesday, "09:00", "17:00"),
			},
			nil,
		},
		{
			"adjacent windows on the same day don't conflict",
			[]AvailabilityWindow{
				window(t, Monday, "09:00", "12:00"),
				window(t, Monday, "12:00", "17:00"),
			},
			nil,
		},
		{
			"overlap is reported once, against the later window",
			[]AvailabilityWindow{
				window(t, Tuesday, "09:00", "12:00"),
				window(t, Tuesday, "11:00", "13:00"),
			},
			[]ValidationError{
				{WindowIndex: 1, Message: "overlaps with another window on the same day"},
			},
		},
		{
			"end before start",
			[]AvailabilityWindow{window(t, Monday, "17:00", "09:00")},
			[]ValidationError{
				{WindowIndex: 0, Field: "endTime", Message: "end time 09:00 must be after start time 17:00"},
			},
		},
		{
			"zero length window",
			[]AvailabilityWindow{window(t, Monday, "09:00", "09:00")},
			[]ValidationError{
				{WindowIndex: 0, Field: "endTime", Message: "end time 09:00 must be after start time 09:00"},
			},
		},
	}

	for _, tt := range validationTests {
		got := ValidateWindows(tt.in)

		if len(got) != len(tt.wantErrors) {
			t.Errorf("%s: got %d errors (%v), want %d", tt.name, len(got), got, len(tt.wantErrors))
			continue
		}

		for i, wantError := range tt.wantErrors {
			if got[i] != wantError {
				t.Errorf("%s: error %d = %+v, want %+v", tt.name, i, got[i], wantError)
			}
		}
	}
}

func TestValidateWindows_CollectsAllOffendingWindows(t *testing.T) {
	windows := []AvailabilityWindow{
		window(t, Monday, "09:00", "12:00"),
		window(t, Monday, "11:00", "13:00"),
		window(t, Friday, "08:00", "10:00"),
		window(t, Friday, "09:00", "11:00"),
	}

	got := ValidateWindows(windows)
	if len(got) != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}

	if got[0].WindowIndex+got[1].WindowIndex != 4 {
		t.Errorf("expected the later windows (1 and 3) to be flagged, got %v", got)
	}
}
