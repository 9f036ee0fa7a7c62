package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Status     *string `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	MechanicID *int64  `json:"mechanicId,omitempty"` // Фильтр по механику (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		MechanicID: r.MechanicID,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на ремонт
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	MechanicID    int64   `json:"mechanicId"`
	ClientName    string  `json:"clientName"`
	ClientPhone   string  `json:"clientPhone"`
	ClientAddress string  `json:"clientAddress"`
	CarLicense    string  `json:"carLicense"`
	CarEngine     string  `json:"carEngine"`
	Notes         *string `json:"notes,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2025-10-15"
	Status          string `json:"status"`
	StatusText      string `json:"statusText"` // "In Progress" и т.п. для отображения
	IsActive        bool   `json:"isActive"`   // Занимает ли запись слот механика

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Count        int                   `json:"count"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		MechanicID:      a.MechanicID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		ClientAddress:   a.ClientAddress,
		CarLicense:      a.CarLicense,
		CarEngine:       a.CarEngine,
		Notes:           a.Notes,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		Status:          string(a.Status),
		StatusText:      StatusText(a.Status),
		IsActive:        a.IsActive(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	resp.Count = len(resp.Appointments)
	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// StatusText возвращает человекочитаемое название статуса
func StatusText(s domain.AppointmentStatus) string {
	switch s {
	case domain.StatusConfirmed:
		return "Confirmed"
	case domain.StatusPending:
		return "Pending"
	case domain.StatusInProgress:
		return "In Progress"
	case domain.StatusCompleted:
		return "Completed"
	case domain.StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
