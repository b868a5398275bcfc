package scheduling

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// AvailabilityGet is the route computing the bookable start instants for an
// owner. A fully booked owner yields a 200 with an empty times array; only an
// upstream failure yields an error status.
func (handler *Handler) AvailabilityGet(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	durationInMinutes, err := strconv.Atoi(request.URL.Query().Get("durationInMinutes"))
	if err != nil || durationInMinutes <= 0 {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"durationInMinutes must be a positive integer", err)
		return
	}

	horizonDays := DefaultHorizonDays
	if value := request.URL.Query().Get("horizonDays"); value != "" {
		horizonDays, err = strconv.Atoi(value)
		if err != nil || horizonDays <= 0 {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
				"horizonDays must be a positive integer", err)
			return
		}
	}

	slots, err := handler.AvailabilityService.ResolveAvailableSlots(request.Context(), ownerID, durationInMinutes, horizonDays)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not resolve available slots", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"times": slots})
}
