package handlers

import (
	"net/http"
	"strings"
	"time"

	"crewline/internal/app"
	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/user"
	"crewline/internal/http/middleware"
	"crewline/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	decisions    *app.DecisionService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, decisions *app.DecisionService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, decisions: decisions, limiter: limiter}
}

type applyRequest struct {
	EventID       string `json:"event_id"`
	RequestedRole string `json:"requested_role"`
	Notes         string `json:"notes"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.EventID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"event_id": "event_id is required"}))
		return
	}
	eventID, err := common.ParseUUID(req.EventID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"event_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + eventID.String() + ":" + applicantID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), eventID, applicantID, application.Role(req.RequestedRole), req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	if role == user.RoleAdmin {
		status := application.Status(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
		items, err := h.applications.List(r.Context(), status)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
		return
	}
	items, err := h.applications.ListByApplicant(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	if role != user.RoleAdmin && item.ApplicantID != userID {
		response.Error(w, common.NewError(common.CodeForbidden, "application belongs to another applicant", nil))
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type decideRequest struct {
	Status       string `json:"status"`
	AssignedRole string `json:"assigned_role"`
}

// Decide handles PUT /applications/{id}: with a status it is a decision,
// without one it amends the assigned role of an accepted application.
func (h *ApplicationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req decideRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		if req.AssignedRole == "" {
			response.Error(w, common.NewValidationError("nothing to update", map[string]string{"status": "status or assigned_role is required"}))
			return
		}
		updated, err := h.decisions.UpdateAssignedRole(r.Context(), id, application.Role(req.AssignedRole))
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, updated)
		return
	}
	updated, err := h.decisions.Decide(r.Context(), id, app.DecideRequest{
		Status:       application.Status(req.Status),
		AssignedRole: application.Role(req.AssignedRole),
	}, adminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *ApplicationHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req notesRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateNotes(r.Context(), id, applicantID, req.Notes)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Withdraw(r.Context(), id, applicantID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "application withdrawn"})
}
