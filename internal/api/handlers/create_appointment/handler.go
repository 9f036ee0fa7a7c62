package create_appointment

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	"github.com/m04kA/SMC-GarageService/internal/domain"
	createAppointment "github.com/m04kA/SMC-GarageService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-GarageService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "не заполнены обязательные поля или превышена допустимая длина"
	msgInvalidDate        = "некорректная дата записи, ожидается YYYY-MM-DD не в прошлом"
	msgMechanicNotFound   = "механик не найден"
	msgDuplicateBooking   = "у клиента уже есть активная запись на эту дату"
	msgFullyBooked        = "у механика не осталось свободных слотов"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var dup *createAppointment.DuplicateBookingError
		var full *createAppointment.FullyBookedError

		switch {
		case errors.As(err, &dup):
			h.logger.Warn("POST /appointments - Duplicate booking: phone=%s, date=%s",
				req.ClientPhone, req.AppointmentDate)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Success:            false,
				Message:            msgDuplicateBooking,
				ExistingClientName: ptr.Ptr(dup.ClientName),
				ExistingMechanicID: ptr.Ptr(dup.MechanicID),
				ExistingDate:       ptr.Ptr(dup.Date.Format(domain.DateFormat)),
			})

		case errors.As(err, &full):
			h.logger.Warn("POST /appointments - Mechanic fully booked: mechanic_id=%d", req.MechanicID)
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Success:        false,
				Message:        fmt.Sprintf("%s: %s (%d/%d)", msgFullyBooked, full.MechanicName, full.AvailableSlots, full.TotalSlots),
				MechanicName:   ptr.Ptr(full.MechanicName),
				AvailableSlots: ptr.Ptr(full.AvailableSlots),
				TotalSlots:     ptr.Ptr(full.TotalSlots),
			})

		case errors.Is(err, createAppointment.ErrMechanicNotFound):
			h.logger.Warn("POST /appointments - Mechanic not found: mechanic_id=%d", req.MechanicID)
			handlers.RespondNotFound(w, msgMechanicNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: mechanic_id=%d, error=%v",
				req.MechanicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, mechanic_id=%d",
		result.ID, result.MechanicID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
