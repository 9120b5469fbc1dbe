package handlers

import (
	"net/http"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/apierror"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/middleware"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/registrations"
)

type RegistrationsHandler struct {
	Ledger *registrations.Ledger
}

func NewRegistrationsHandler(ledger *registrations.Ledger) *RegistrationsHandler {
	return &RegistrationsHandler{Ledger: ledger}
}

type attendanceResponse struct {
	EventID   string `json:"eventId"`
	Attendees int    `json:"attendees"`
}

// Register records the caller's RSVP for the event. Registering twice is a
// no-op; the response always carries the live count.
func (h *RegistrationsHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	eventID := pathParam(r, "id")
	count, err := h.Ledger.Register(r.Context(), eventID, user.ID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, attendanceResponse{EventID: eventID, Attendees: count})
}

// Unregister removes the caller's RSVP; a no-op if they never registered.
func (h *RegistrationsHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	eventID := pathParam(r, "id")
	count, err := h.Ledger.Unregister(r.Context(), eventID, user.ID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, attendanceResponse{EventID: eventID, Attendees: count})
}

// Mine lists the ids of every event the caller has registered for.
func (h *RegistrationsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ids, err := h.Ledger.RegisteredEventIDs(r.Context(), user.ID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusOK, ids)
}
