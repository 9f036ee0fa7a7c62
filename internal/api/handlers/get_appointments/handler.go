package get_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	appointmentsService "github.com/m04kA/SMC-GarageService/internal/service/appointments"
	"github.com/m04kA/SMC-GarageService/internal/service/appointments/models"
)

const (
	msgInvalidStatus     = "недопустимый статус в фильтре"
	msgInvalidMechanicID = "некорректный идентификатор механика в фильтре"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?status=&mechanicId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	if rawID := r.URL.Query().Get("mechanicId"); rawID != "" {
		mechanicID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid mechanicId filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMechanicID)
			return
		}
		req.MechanicID = &mechanicID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidStatus):
			h.logger.Warn("GET /appointments - Invalid status filter: %v", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Returned %d appointments", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
