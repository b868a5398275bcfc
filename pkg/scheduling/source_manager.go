package scheduling

import (
	"context"

	"github.com/sanrasta/psychology/pkg/logger"
	"github.com/sanrasta/psychology/pkg/owners"
	"github.com/sanrasta/psychology/pkg/scheduling/calendar"
)

// CalendarSourceManager decides which busy interval source an owner needs and
// keeps refreshed OAuth tokens persisted
type CalendarSourceManager struct {
	ownerRepository   owners.OwnerRepositoryInterface
	logger            logger.Interface
	overriddenSources map[string]calendar.BusyIntervalSourceInterface
}

// NewCalendarSourceManager creates a new CalendarSourceManager
func NewCalendarSourceManager(ownerRepository owners.OwnerRepositoryInterface, logger logger.Interface) *CalendarSourceManager {
	manager := CalendarSourceManager{ownerRepository: ownerRepository, logger: logger}

	return &manager
}

// GetBusySourceForOwner gets the busy interval source for an owner
func (m *CalendarSourceManager) GetBusySourceForOwner(ctx context.Context, owner *owners.Owner) (calendar.BusyIntervalSourceInterface, error) {
	if len(m.overriddenSources) > 0 && m.overriddenSources[owner.ID.Hex()] != nil {
		return m.overriddenSources[owner.ID.Hex()], nil
	}

	return m.setupGoogleSource(ctx, owner)
}

// setupGoogleSource manages token refreshing
func (m *CalendarSourceManager) setupGoogleSource(ctx context.Context, owner *owners.Owner) (*calendar.GoogleCalendarSource, error) {
	oldAccessToken := owner.GoogleCalendarConnection.Token.AccessToken

	source, err := calendar.NewGoogleCalendarSource(ctx, owner, m.logger)
	if err != nil {
		return nil, err
	}

	if oldAccessToken != owner.GoogleCalendarConnection.Token.AccessToken {
		err := m.ownerRepository.Update(ctx, owner)
		if err != nil {
			return nil, err
		}
	}

	return source, nil
}
