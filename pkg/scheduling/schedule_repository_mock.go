package scheduling

import (
	"context"
)

// MockScheduleRepository keeps schedules in memory for tests
type MockScheduleRepository struct {
	Schedules []*Schedule
	FindErr   error
}

// FindByOwner finds the schedule of an owner
func (r *MockScheduleRepository) FindByOwner(ctx context.Context, ownerID string) (*Schedule, error) {
	if r.FindErr != nil {
		return nil, r.FindErr
	}

	for _, schedule := range r.Schedules {
		if schedule.OwnerID == ownerID {
			return schedule, nil
		}
	}

	return nil, nil
}

// Save persists a schedule
func (r *MockScheduleRepository) Save(ctx context.Context, schedule *Schedule) error {
	for i, existing := range r.Schedules {
		if existing.OwnerID == schedule.OwnerID {
			r.Schedules[i] = schedule
			return nil
		}
	}

	r.Schedules = append(r.Schedules, schedule)
	return nil
}
