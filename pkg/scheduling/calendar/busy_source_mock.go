package calendar

import (
	"context"

	"github.com/sanrasta/psychology/pkg/date"
)

// MockBusySource serves canned busy intervals for tests
type MockBusySource struct {
	Busy []date.Timespan
	Err  error

	// FetchCount counts upstream calls so tests can assert the lookup happens
	// once per resolution, not once per candidate
	FetchCount int
}

// FetchBusy returns the canned intervals that fall inside the window
func (m *MockBusySource) FetchBusy(_ context.Context, window date.Timespan) ([]date.Timespan, error) {
	m.FetchCount++

	if m.Err != nil {
		return nil, m.Err
	}

	var busy []date.Timespan
	for _, timespan := range m.Busy {
		if timespan.IntersectsWith(window) {
			busy = append(busy, timespan)
		}
	}

	return busy, nil
}
