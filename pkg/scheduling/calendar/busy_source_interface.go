package calendar

import (
	"context"

	"github.com/sanrasta/psychology/pkg/date"
)

// BusyIntervalSourceInterface is the contract for every external calendar
// implementation, e.g. Google Calendar, Microsoft Calendar,...
//
// FetchBusy returns the owner's already-booked intervals inside the window,
// resolved to absolute time. A failure fails the whole resolution request;
// callers decide retry policy.
type BusyIntervalSourceInterface interface {
	FetchBusy(ctx context.Context, window date.Timespan) ([]date.Timespan, error)
}
