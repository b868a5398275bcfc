package owners

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sanrasta/psychology/internal/google"
	"github.com/sanrasta/psychology/pkg/communication"
	"github.com/sanrasta/psychology/pkg/logger"
)

// Handler handles all owner related API calls
type Handler struct {
	OwnerRepository OwnerRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// OwnerAdd is the route for adding an owner
func (handler *Handler) OwnerAdd(writer http.ResponseWriter, request *http.Request) {
	owner := Owner{}

	err := json.NewDecoder(request.Body).Decode(&owner)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(owner)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.OwnerRepository.Add(request.Context(), &owner)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Persisting owner in database did not work", err)
		return
	}

	handler.ResponseManager.Respond(writer, &owner)
}

// OwnerGet is the route for retrieving a single owner
func (handler *Handler) OwnerGet(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	owner, err := handler.OwnerRepository.FindByID(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find owner", err)
		return
	}

	handler.ResponseManager.Respond(writer, owner)
}

// OwnerDelete is the route for removing an owner
func (handler *Handler) OwnerDelete(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	_, err := handler.OwnerRepository.FindByID(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find owner", err)
		return
	}

	err = handler.OwnerRepository.Remove(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Removing owner from database did not work", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// GoogleCalendarConnect kicks off the OAuth flow that lets us read the owner's busy times
func (handler *Handler) GoogleCalendarConnect(writer http.ResponseWriter, request *http.Request) {
	ownerID := mux.Vars(request)["ownerID"]

	owner, err := handler.OwnerRepository.FindByID(request.Context(), ownerID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Could not find owner", err)
		return
	}

	url, stateToken, err := google.GetGoogleAuthURL()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem building Google auth url", err)
		return
	}

	owner.GoogleCalendarConnection.StateToken = stateToken
	err = handler.OwnerRepository.Update(request.Context(), owner)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist state token", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"url": url})
}

// GoogleCalendarCallback is the redirect target of the OAuth flow
func (handler *Handler) GoogleCalendarCallback(writer http.ResponseWriter, request *http.Request) {
	stateToken := request.URL.Query().Get("state")
	authCode := request.URL.Query().Get("code")

	if stateToken == "" || authCode == "" {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Missing state or code query parameter", nil)
		return
	}

	owner, err := handler.OwnerRepository.FindByGoogleStateToken(request.Context(), stateToken)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"Invalid state token", err)
		return
	}

	token, err := google.GetGoogleToken(request.Context(), authCode)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem exchanging auth code for token", err)
		return
	}

	owner.GoogleCalendarConnection.Token = *token
	owner.GoogleCalendarConnection.StateToken = ""
	if len(owner.GoogleCalendarConnection.CalendarsOfInterest) == 0 {
		owner.GoogleCalendarConnection.CalendarsOfInterest = []GoogleCalendarSync{{CalendarID: "primary"}}
	}

	err = handler.OwnerRepository.Update(request.Context(), owner)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist calendar connection", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
