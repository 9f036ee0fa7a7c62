package update_appointment_status

import (
	"time"

	updateStatus "github.com/m04kA/SMC-GarageService/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`

	// MechanicID принимается для обратной совместимости тела запроса;
	// значение, отличное от текущего механика записи, отклоняется
	MechanicID *int64 `json:"mechanicId,omitempty"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Success        bool   `json:"success"`
	AppointmentID  int64  `json:"appointmentId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
	UpdatedAt      string `json:"updatedAt"`

	// SlotUpdate присутствует только когда переход изменил счётчик слотов
	SlotUpdate *SlotUpdateResponse `json:"slotUpdate,omitempty"`
}

// SlotUpdateResponse обновление счётчиков слотов механика
type SlotUpdateResponse struct {
	MechanicID     int64  `json:"mechanicId"`
	MechanicName   string `json:"mechanicName"`
	PreviousSlots  int    `json:"previousSlots"`
	AvailableSlots int    `json:"availableSlots"`
	TotalSlots     int    `json:"totalSlots"`
	SlotChange     int    `json:"slotChange"`
	Reason         string `json:"reason"`
}

// ConflictResponse структурированный отказ реактивации (409)
type ConflictResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	MechanicName   string `json:"mechanicName"`
	AvailableSlots int    `json:"availableSlots"`
	TotalSlots     int    `json:"totalSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(appointmentID int64) *updateStatus.Request {
	return &updateStatus.Request{
		AppointmentID: appointmentID,
		Status:        r.Status,
		MechanicID:    r.MechanicID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	out := &UpdateStatusResponse{
		Success:        true,
		AppointmentID:  resp.AppointmentID,
		PreviousStatus: resp.PreviousStatus,
		NewStatus:      resp.NewStatus,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.SlotUpdate != nil {
		out.SlotUpdate = &SlotUpdateResponse{
			MechanicID:     resp.SlotUpdate.MechanicID,
			MechanicName:   resp.SlotUpdate.MechanicName,
			PreviousSlots:  resp.SlotUpdate.PreviousAvailableSlots,
			AvailableSlots: resp.SlotUpdate.CurrentAvailableSlots,
			TotalSlots:     resp.SlotUpdate.TotalSlots,
			SlotChange:     resp.SlotUpdate.SlotChange,
			Reason:         resp.SlotUpdate.Reason,
		}
	}

	return out
}
