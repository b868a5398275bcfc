package scheduling

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sanrasta/psychology/pkg/communication"
	"github.com/sanrasta/psychology/pkg/locking"
	"github.com/sanrasta/psychology/pkg/logger"
)

const scheduleLockTTL = 10 * time.Second

// Handler handles all schedule and availability related API calls
type Handler struct {
	ScheduleRepository  ScheduleRepositoryInterface
	AvailabilityService *AvailabilityService
	Locker              locking.LockerInterface
	Logger              logger.Interface
	ResponseManager     *communication.ResponseManager
}

// SchedulePayload is the transport shape of a schedule save
type SchedulePayload struct {
	Timezone string               `json:"timezone" validate:"required"`
	Windows  []AvailabilityWindow `json:"windows"`
}

// ScheduleGet returns the owner's schedule. An owner without one gets the
// default schedule persisted on first access, so later edits start from real
// rows.
func (handler *Handler) ScheduleGet(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	schedule, err := handler.ScheduleRepository.FindByOwner(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not load schedule", err)
		return
	}

	if schedule == nil {
		lock, err := handler.Locker.Acquire(request.Context(), "schedule-save-"+ownerID, scheduleLockTTL)
		if err != nil {
			handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
				"Could not acquire schedule lock", err)
			return
		}
		defer func() {
			err := lock.Release(request.Context())
			if err != nil {
				handler.Logger.Warning("Could not release schedule lock", err)
			}
		}()

		schedule = DefaultSchedule(ownerID, DefaultLocation())
		err = handler.ScheduleRepository.Save(request.Context(), schedule)
		if err != nil {
			handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
				"Could not persist default schedule", err)
			return
		}
	}

	handler.ResponseManager.Respond(writer, schedule)
}

// ScheduleSave replaces the owner's schedule wholesale
func (handler *Handler) ScheduleSave(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	payload := SchedulePayload{}
	err := json.NewDecoder(request.Body).Decode(&payload)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(payload)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	proposed := Schedule{
		OwnerID:  ownerID,
		Timezone: payload.Timezone,
		Windows:  payload.Windows,
	}

	if validationErrors := proposed.Validate(); len(validationErrors) > 0 {
		handler.ResponseManager.RespondWithStatus(writer, map[string]interface{}{
			"error":  ErrInvalidSchedule.Error(),
			"errors": validationErrors,
		}, http.StatusBadRequest)
		return
	}

	lock, err := handler.Locker.Acquire(request.Context(), "schedule-save-"+ownerID, scheduleLockTTL)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not acquire schedule lock", err)
		return
	}
	defer func() {
		err := lock.Release(request.Context())
		if err != nil {
			handler.Logger.Warning("Could not release schedule lock", err)
		}
	}()

	existing, err := handler.ScheduleRepository.FindByOwner(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not load schedule", err)
		return
	}

	if existing != nil {
		proposed.ID = existing.ID
		proposed.CreatedAt = existing.CreatedAt
	}

	err = handler.ScheduleRepository.Save(request.Context(), &proposed)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Persisting schedule in database did not work", err)
		return
	}

	handler.AvailabilityService.InvalidateOwnerData(request.Context(), ownerID)

	handler.ResponseManager.Respond(writer, &proposed)
}
