package handlers

import (
	"net/http"
	"time"

	"crewline/internal/app"
	"crewline/internal/common"
	"crewline/internal/domain/transportation"
	"crewline/internal/domain/user"
	"crewline/internal/http/middleware"
	"crewline/internal/http/response"
)

type TransportationHandler struct {
	transport    *app.TransportationService
	applications *app.ApplicationService
}

func NewTransportationHandler(transport *app.TransportationService, applications *app.ApplicationService) *TransportationHandler {
	return &TransportationHandler{transport: transport, applications: applications}
}

type transportationRequest struct {
	VehicleCapacity int        `json:"vehicle_capacity"`
	PickupLocation  string     `json:"pickup_location"`
	DepartureTime   time.Time  `json:"departure_time"`
	ReturnTime      *time.Time `json:"return_time"`
	Payment         float64    `json:"payment"`
}

func (h *TransportationHandler) Save(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req transportationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	saved, err := h.transport.Save(r.Context(), transportation.Transportation{
		ApplicationID:   applicationID,
		VehicleCapacity: req.VehicleCapacity,
		PickupLocation:  req.PickupLocation,
		DepartureTime:   req.DepartureTime,
		ReturnTime:      req.ReturnTime,
		Payment:         req.Payment,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

// Get is allowed for admins and for the applicant the record belongs to.
func (h *TransportationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	if role != user.RoleAdmin {
		owner, err := h.applications.Get(r.Context(), applicationID)
		if err != nil {
			response.Error(w, err)
			return
		}
		if owner.ApplicantID != userID {
			response.Error(w, common.NewError(common.CodeForbidden, "application belongs to another applicant", nil))
			return
		}
	}
	item, err := h.transport.Get(r.Context(), applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *TransportationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.transport.Delete(r.Context(), applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "transportation deleted"})
}
