package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
	createAppointment "github.com/m04kA/SMC-GarageService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	ClientAddress   string  `json:"clientAddress"`
	CarLicense      string  `json:"carLicense"`
	CarEngine       string  `json:"carEngine"`
	AppointmentDate string  `json:"appointmentDate"` // "2025-10-15"
	MechanicID      int64   `json:"mechanicId"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	Success         bool    `json:"success"`
	ID              int64   `json:"id"`
	MechanicID      int64   `json:"mechanicId"`
	MechanicName    string  `json:"mechanicName"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	ClientAddress   string  `json:"clientAddress"`
	CarLicense      string  `json:"carLicense"`
	CarEngine       string  `json:"carEngine"`
	Notes           *string `json:"notes,omitempty"`
	AppointmentDate string  `json:"appointmentDate"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`

	SlotUpdate SlotUpdateResponse `json:"slotUpdate"`
}

// SlotUpdateResponse обновление счётчиков слотов механика
type SlotUpdateResponse struct {
	MechanicID     int64  `json:"mechanicId"`
	MechanicName   string `json:"mechanicName"`
	PreviousSlots  int    `json:"previousSlots"`
	AvailableSlots int    `json:"availableSlots"`
	TotalSlots     int    `json:"totalSlots"`
	SlotChange     int    `json:"slotChange"`
}

// ConflictResponse структурированный отказ бронирования (409)
type ConflictResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	MechanicName   *string `json:"mechanicName,omitempty"`
	AvailableSlots *int    `json:"availableSlots,omitempty"`
	TotalSlots     *int    `json:"totalSlots,omitempty"`

	// Контекст существующей записи при дубле
	ExistingClientName *string `json:"existingClientName,omitempty"`
	ExistingMechanicID *int64  `json:"existingMechanicId,omitempty"`
	ExistingDate       *string `json:"existingDate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientAddress:   r.ClientAddress,
		CarLicense:      r.CarLicense,
		CarEngine:       r.CarEngine,
		AppointmentDate: r.AppointmentDate,
		MechanicID:      r.MechanicID,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		Success:         true,
		ID:              resp.ID,
		MechanicID:      resp.MechanicID,
		MechanicName:    resp.MechanicName,
		ClientName:      resp.ClientName,
		ClientPhone:     resp.ClientPhone,
		ClientAddress:   resp.ClientAddress,
		CarLicense:      resp.CarLicense,
		CarEngine:       resp.CarEngine,
		Notes:           resp.Notes,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
		SlotUpdate: SlotUpdateResponse{
			MechanicID:     resp.SlotUpdate.MechanicID,
			MechanicName:   resp.SlotUpdate.MechanicName,
			PreviousSlots:  resp.SlotUpdate.PreviousAvailableSlots,
			AvailableSlots: resp.SlotUpdate.CurrentAvailableSlots,
			TotalSlots:     resp.SlotUpdate.TotalSlots,
			SlotChange:     resp.SlotUpdate.SlotChange,
		},
	}
}
