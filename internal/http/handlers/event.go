package handlers

import (
	"net/http"
	"strings"
	"time"

	"crewline/internal/app"
	"crewline/internal/domain/event"
	"crewline/internal/http/response"
)

type EventHandler struct {
	events *app.EventService
}

func NewEventHandler(events *app.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type createEventRequest struct {
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Venue     string    `json:"venue"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	HostCount int       `json:"host_count"`
	Status    string    `json:"status"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.events.Create(r.Context(), event.Event{
		Title:     req.Title,
		Location:  req.Location,
		Venue:     req.Venue,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		HostCount: req.HostCount,
		Status:    event.Status(strings.ToLower(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	status := event.Status(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	items, err := h.events.List(r.Context(), status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.events.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
