package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sanrasta/psychology/pkg/date"
	"github.com/sanrasta/psychology/pkg/logger"
	"github.com/sanrasta/psychology/pkg/owners"
	"golang.org/x/sync/errgroup"
)

// now is the current time and is globally available to override it in tests
var now = time.Now

// resolverChunkSize decides how many candidates a single goroutine filters
const resolverChunkSize = 256

// AvailabilityService is the resolution entry point: it composes candidate
// generation, schedule lookup, the default availability policy, the busy
// interval source and the slot resolver
type AvailabilityService struct {
	scheduleRepository ScheduleRepositoryInterface
	ownerRepository    owners.OwnerRepositoryInterface
	sourceManager      *CalendarSourceManager
	cache              OwnerDataCacheInterface
	logger             logger.Interface
}

// NewAvailabilityService constructs an AvailabilityService
func NewAvailabilityService(scheduleRepository ScheduleRepositoryInterface,
	ownerRepository owners.OwnerRepositoryInterface,
	sourceManager *CalendarSourceManager,
	cache OwnerDataCacheInterface,
	logger logger.Interface) *AvailabilityService {
	service := AvailabilityService{}

	service.scheduleRepository = scheduleRepository
	service.ownerRepository = ownerRepository
	service.sourceManager = sourceManager
	service.cache = cache
	service.logger = logger

	return &service
}

// ResolveAvailableSlots computes the bookable start instants for an owner: a
// 15 minute grid from now through the end of the day horizonDays later,
// filtered against the owner's recurring schedule (or the default policy when
// none is persisted) and the busy intervals of their external calendar.
//
// The busy lookup happens once per resolution, not once per candidate. An
// empty result is a normal outcome and comes back as an empty slice with a
// nil error.
func (s *AvailabilityService) ResolveAvailableSlots(ctx context.Context, ownerID string, durationInMinutes int, horizonDays int) ([]time.Time, error) {
	if durationInMinutes <= 0 {
		return nil, fmt.Errorf("duration must be a positive amount of minutes, got %d", durationInMinutes)
	}

	entry, err := s.loadOwnerData(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	schedule := entry.Schedule
	if schedule == nil {
		// The substitution happens once, here at the call boundary, never per
		// candidate.
		schedule = DefaultSchedule(ownerID, DefaultLocation())
	} else if validationErrors := schedule.Validate(); len(validationErrors) > 0 {
		return nil, errors.Wrap(ErrInvalidSchedule, validationErrors[0].Error())
	}

	candidates := GenerateCandidates(now(), horizonDays, DefaultStep)
	if len(candidates) == 0 {
		return []time.Time{}, nil
	}

	duration := time.Duration(durationInMinutes) * time.Minute
	window := date.Timespan{
		Start: candidates[0],
		End:   candidates[len(candidates)-1].Add(duration),
	}

	source, err := s.sourceManager.GetBusySourceForOwner(ctx, entry.Owner)
	if err != nil {
		return nil, err
	}

	busy, err := source.FetchBusy(ctx, window)
	if err != nil {
		return nil, err
	}

	slots, err := s.resolveChunked(ctx, candidates, duration, schedule, busy)
	if err != nil {
		return nil, err
	}

	if slots == nil {
		slots = []time.Time{}
	}

	return slots, nil
}

// resolveChunked runs the pure filter over fixed-size candidate chunks in
// parallel. Results are collected per chunk index, so the output order always
// matches the input order.
func (s *AvailabilityService) resolveChunked(ctx context.Context, candidates []time.Time, duration time.Duration, schedule *Schedule, busy []date.Timespan) ([]time.Time, error) {
	if len(candidates) <= resolverChunkSize {
		return ResolveSlots(candidates, duration, schedule, busy)
	}

	chunkCount := (len(candidates) + resolverChunkSize - 1) / resolverChunkSize
	results := make([][]time.Time, chunkCount)

	wg, _ := errgroup.WithContext(ctx)

	for i := 0; i < chunkCount; i++ {
		i := i

		wg.Go(func() error {
			start := i * resolverChunkSize
			end := start + resolverChunkSize
			if end > len(candidates) {
				end = len(candidates)
			}

			chunkSlots, err := ResolveSlots(candidates[start:end], duration, schedule, busy)
			if err != nil {
				return err
			}

			results[i] = chunkSlots
			return nil
		})
	}

	err := wg.Wait()
	if err != nil {
		return nil, err
	}

	var slots []time.Time
	for _, chunkSlots := range results {
		slots = append(slots, chunkSlots...)
	}

	return slots, nil
}

// loadOwnerData retrieves the owner and their schedule, going through the
// cache first
func (s *AvailabilityService) loadOwnerData(ctx context.Context, ownerID string) (*OwnerDataCacheEntry, error) {
	if s.cache != nil {
		entry, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return entry, nil
		}
	}

	owner, err := s.ownerRepository.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepository.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entry := &OwnerDataCacheEntry{Owner: owner, Schedule: schedule}

	if s.cache != nil {
		err = s.cache.Add(ctx, ownerID, entry)
		if err != nil {
			s.logger.Warning("Could not add owner data to cache", err)
		}
	}

	return entry, nil
}

// InvalidateOwnerData drops the cached owner data, e.g. after a schedule save
func (s *AvailabilityService) InvalidateOwnerData(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}

	err := s.cache.Invalidate(ctx, ownerID)
	if err != nil {
		s.logger.Warning("Could not invalidate owner data cache", err)
	}
}
