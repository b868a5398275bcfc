package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanrasta/psychology/pkg/date"
	"github.com/sanrasta/psychology/pkg/logger"
	"github.com/sanrasta/psychology/pkg/owners"
	"github.com/sanrasta/psychology/pkg/scheduling/calendar"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type serviceFixture struct {
	service            *AvailabilityService
	scheduleRepository *MockScheduleRepository
	busySource         *calendar.MockBusySource
	ownerID            string
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	owner := &owners.Owner{ID: primitive.NewObjectID()}
	ownerRepository := &owners.MockOwnerRepository{Owners: []*owners.Owner{owner}}
	scheduleRepository := &MockScheduleRepository{}
	busySource := &calendar.MockBusySource{}

	sourceManager := NewCalendarSourceManager(ownerRepository, logger.Logger{})
	sourceManager.overriddenSources = map[string]calendar.BusyIntervalSourceInterface{
		owner.ID.Hex(): busySource,
	}

	service := NewAvailabilityService(scheduleRepository, ownerRepository, sourceManager, nil, logger.Logger{})

	return &serviceFixture{
		service:            service,
		scheduleRepository: scheduleRepository,
		busySource:         busySource,
		ownerID:            owner.ID.Hex(),
	}
}

func TestResolveAvailableSlots_FallsBackToDefaultSchedule(t *testing.T) {
	fixture := newServiceFixture(t)

	oldNow := now
	now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }
	defer func() { now = oldNow }()

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(slots) == 0 {
		t.Fatal("expected slots from the default policy")
	}

	// Every slot plus its duration has to fit 06:00-20:00 local time
	for _, slot := range slots {
		local := slot.In(time.Local)
		minuteOfDay := local.Hour()*60 + local.Minute()

		if minuteOfDay < 6*60 || minuteOfDay+30 > 20*60 {
			t.Fatalf("slot %v falls outside the default windows", local)
		}
	}
}

func TestResolveAvailableSlots_FetchesBusyIntervalsOnce(t *testing.T) {
	fixture := newServiceFixture(t)

	oldNow := now
	now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }
	defer func() { now = oldNow }()

	// A 14 day horizon yields well over a thousand candidates
	_, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, DefaultHorizonDays)
	if err != nil {
		t.Fatal(err)
	}

	if fixture.busySource.FetchCount != 1 {
		t.Errorf("busy intervals were fetched %d times, want exactly once", fixture.busySource.FetchCount)
	}
}

func TestResolveAvailableSlots_ChunkedOrderMatchesInlineResolution(t *testing.T) {
	fixture := newServiceFixture(t)

	oldNow := now
	fixedNow := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixedNow }
	defer func() { now = oldNow }()

	schedule := &Schedule{OwnerID: fixture.ownerID, Timezone: "UTC", Windows: DefaultWindows()}
	fixture.scheduleRepository.Schedules = []*Schedule{schedule}

	busyStart := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	fixture.busySource.Busy = []date.Timespan{{Start: busyStart, End: busyStart.Add(2 * time.Hour)}}

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, DefaultHorizonDays)
	if err != nil {
		t.Fatal(err)
	}

	candidates := GenerateCandidates(fixedNow, DefaultHorizonDays, DefaultStep)
	if len(candidates) <= resolverChunkSize {
		t.Fatalf("a grid of %d candidates does not exercise the parallel path", len(candidates))
	}

	// The parallel filter must produce exactly what a single inline pass does,
	// in the same order
	want, err := ResolveSlots(candidates, 30*time.Minute, schedule, fixture.busySource.Busy)
	if err != nil {
		t.Fatal(err)
	}

	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}

	for i := range want {
		if !slots[i].Equal(want[i]) {
			t.Fatalf("slot %d = %v, want %v", i, slots[i], want[i])
		}
	}

	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatalf("slots are not strictly ascending at index %d", i)
		}
	}
}

func TestResolveAvailableSlots_BusySourceFailureFailsTheResolution(t *testing.T) {
	fixture := newServiceFixture(t)
	sourceErr := errors.New("freebusy query failed")
	fixture.busySource.Err = sourceErr

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 2)
	if !errors.Is(err, sourceErr) {
		t.Fatalf("err = %v, want the busy source error", err)
	}

	if slots != nil {
		t.Errorf("a failed resolution must not produce partial slots, got %v", slots)
	}
}

func TestResolveAvailableSlots_ExcludesBusyIntervals(t *testing.T) {
	fixture := newServiceFixture(t)

	oldNow := now
	now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local) }
	defer func() { now = oldNow }()

	busyStart := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	fixture.busySource.Busy = []date.Timespan{{Start: busyStart, End: busyStart.Add(time.Hour)}}

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, slot := range slots {
		meeting := date.Timespan{Start: slot, End: slot.Add(30 * time.Minute)}
		if meeting.IntersectsWith(fixture.busySource.Busy[0]) {
			t.Fatalf("slot %v overlaps a busy interval", slot)
		}
	}
}

func TestResolveAvailableSlots_EmptyResultIsNotAnError(t *testing.T) {
	fixture := newServiceFixture(t)

	// A persisted schedule with no windows at all is valid and never bookable
	fixture.scheduleRepository.Schedules = []*Schedule{
		{OwnerID: fixture.ownerID, Timezone: "UTC"},
	}

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 2)
	if err != nil {
		t.Fatal(err)
	}

	if slots == nil || len(slots) != 0 {
		t.Errorf("slots = %v, want an empty non-nil slice", slots)
	}
}

func TestResolveAvailableSlots_InvalidPersistedSchedule(t *testing.T) {
	fixture := newServiceFixture(t)

	// A day label like this one can only come from corrupted or hand-edited
	// data, so the resolution surfaces it instead of guessing
	fixture.scheduleRepository.Schedules = []*Schedule{
		{
			OwnerID:  fixture.ownerID,
			Timezone: "UTC",
			Windows: []AvailabilityWindow{
				{Day: DayOfWeek("wendesday"), Start: mustTimeOfDay(t, "09:00"), End: mustTimeOfDay(t, "17:00")},
			},
		},
	}

	_, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 2)
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("err = %v, want ErrInvalidSchedule", err)
	}

	if fixture.busySource.FetchCount != 0 {
		t.Error("an invalid schedule must fail before the busy lookup")
	}
}

func TestResolveAvailableSlots_RejectsNonPositiveDuration(t *testing.T) {
	fixture := newServiceFixture(t)

	for _, durationInMinutes := range []int{0, -30} {
		_, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, durationInMinutes, 2)
		if err == nil {
			t.Errorf("duration %d must be rejected", durationInMinutes)
		}
	}

	if fixture.busySource.FetchCount != 0 {
		t.Error("a rejected duration must fail before the busy lookup")
	}
}

func TestResolveAvailableSlots_UsesThePersistedSchedule(t *testing.T) {
	fixture := newServiceFixture(t)

	oldNow := now
	now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = oldNow }()

	// Mondays only, 2024-01-01 is a Monday
	fixture.scheduleRepository.Schedules = []*Schedule{
		{
			OwnerID:  fixture.ownerID,
			Timezone: "UTC",
			Windows:  []AvailabilityWindow{window(t, Monday, "09:00", "10:00")},
		},
	}

	slots, err := fixture.service.ResolveAvailableSlots(context.Background(), fixture.ownerID, 30, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	}

	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}

	for i := range want {
		if !slots[i].Equal(want[i]) {
			t.Errorf("slot %d = %v, want %v", i, slots[i], want[i])
		}
	}
}
