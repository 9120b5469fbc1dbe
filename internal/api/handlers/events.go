package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/apierror"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/api/middleware"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/events"
)

type EventsHandler struct {
	Catalog *events.Service
}

func NewEventsHandler(catalog *events.Service) *EventsHandler {
	return &EventsHandler{Catalog: catalog}
}

// List is public: every event, each with its live attendee count.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListAll(r.Context())
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var input events.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := h.Catalog.Create(r.Context(), events.Creator{ID: user.ID, Email: user.Email}, input)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id := pathParam(r, "id")
	if id == "" {
		apierror.Write(w, r, http.StatusNotFound, "Not found", nil)
		return
	}

	var input events.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := h.Catalog.Update(r.Context(), user.ID, id, input)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id := pathParam(r, "id")
	if id == "" {
		apierror.Write(w, r, http.StatusNotFound, "Not found", nil)
		return
	}

	if err := h.Catalog.Delete(r.Context(), user.ID, id); err != nil {
		writeCatalogError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, events.ErrNotFound):
		apierror.Write(w, r, http.StatusNotFound, "Not found", err)
	case errors.Is(err, events.ErrForbidden):
		apierror.Write(w, r, http.StatusForbidden, "Forbidden", err)
	default:
		apierror.Write(w, r, http.StatusInternalServerError, "Server error", err)
	}
}
