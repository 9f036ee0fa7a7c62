package update_appointment_status

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	updateStatus "github.com/m04kA/SMC-GarageService/internal/usecase/update_status"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный идентификатор записи"
	msgInvalidStatus        = "недопустимый статус записи"
	msgReassignment         = "смена механика через обновление статуса не поддерживается"
	msgAppointmentNotFound  = "запись на ремонт не найдена"
	msgMechanicNotFound     = "механик не найден"
	msgNoCapacity           = "невозможно реактивировать запись, у механика нет свободных слотов"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d/status - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		var noCap *updateStatus.NoCapacityError

		switch {
		case errors.As(err, &noCap):
			h.logger.Warn("PATCH /appointments/%d/status - No capacity: mechanic=%s (%d/%d)",
				appointmentID, noCap.MechanicName, noCap.AvailableSlots, noCap.TotalSlots)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Success:        false,
				Message:        fmt.Sprintf("%s: %s (%d/%d)", msgNoCapacity, noCap.MechanicName, noCap.AvailableSlots, noCap.TotalSlots),
				MechanicName:   noCap.MechanicName,
				AvailableSlots: noCap.AvailableSlots,
				TotalSlots:     noCap.TotalSlots,
			})

		case errors.Is(err, updateStatus.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/status - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateStatus.ErrMechanicNotFound):
			h.logger.Warn("PATCH /appointments/%d/status - Mechanic not found", appointmentID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, updateStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/%d/status - Invalid status: %s", appointmentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateStatus.ErrReassignmentNotSupported):
			h.logger.Warn("PATCH /appointments/%d/status - Reassignment attempt", appointmentID)
			handlers.RespondBadRequest(w, msgReassignment)

		default:
			h.logger.Error("PATCH /appointments/%d/status - Failed to update status: error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/status - Status updated: %s -> %s",
		appointmentID, result.PreviousStatus, result.NewStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
