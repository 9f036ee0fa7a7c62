package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// Response модели

// MechanicResponse ответ с данными механика и производной доступностью
type MechanicResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Contact        string  `json:"contact"`
	Specialization string  `json:"specialization"`
	Experience     int     `json:"experience"`
	Shift          string  `json:"shift"`
	HourlyRate     float64 `json:"hourlyRate"`
	Available      bool    `json:"available"`

	// Слотовый учёт: bookedSlots и isAvailable выводятся из хранимого
	// счётчика, отдельно они не хранятся
	AvailableSlots int  `json:"availableSlots"`
	TotalSlots     int  `json:"totalSlots"`
	BookedSlots    int  `json:"bookedSlots"`
	IsAvailable    bool `json:"isAvailable"`

	// Display helpers
	SlotText   string `json:"slotText"`   // "3/4 slots available"
	StatusText string `json:"statusText"` // "Available" | "Fully Booked"

	CheckDate string `json:"checkDate"` // Дата, на которую отвечает выборка

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MechanicListResponse ответ со списком механиков
type MechanicListResponse struct {
	Mechanics []MechanicResponse `json:"mechanics"`
	Count     int                `json:"count"`
	CheckDate string             `json:"checkDate"`
}

// Методы конвертации

// FromDomainMechanic конвертирует domain модель в DTO с производными полями
func FromDomainMechanic(m *domain.Mechanic, checkDate time.Time) *MechanicResponse {
	if m == nil {
		return nil
	}

	return &MechanicResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Contact:        m.Contact,
		Specialization: m.Specialization,
		Experience:     m.Experience,
		Shift:          m.Shift,
		HourlyRate:     m.HourlyRate,
		Available:      m.Available,
		AvailableSlots: m.AvailableSlots,
		TotalSlots:     m.TotalSlots,
		BookedSlots:    m.BookedSlots(),
		IsAvailable:    m.HasCapacity(),
		SlotText:       SlotText(m.AvailableSlots, m.TotalSlots),
		StatusText:     StatusText(m.HasCapacity()),
		CheckDate:      checkDate.Format(domain.DateFormat),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomainMechanicList конвертирует список domain моделей в DTO
func FromDomainMechanicList(mechanics []*domain.Mechanic, checkDate time.Time) *MechanicListResponse {
	resp := &MechanicListResponse{
		Mechanics: make([]MechanicResponse, 0, len(mechanics)),
		CheckDate: checkDate.Format(domain.DateFormat),
	}

	for _, m := range mechanics {
		if mechResp := FromDomainMechanic(m, checkDate); mechResp != nil {
			resp.Mechanics = append(resp.Mechanics, *mechResp)
		}
	}

	resp.Count = len(resp.Mechanics)
	return resp
}

// SlotText возвращает строку доступности для отображения
func SlotText(availableSlots, totalSlots int) string {
	return fmt.Sprintf("%d/%d slots available", availableSlots, totalSlots)
}

// StatusText возвращает текстовый статус доступности
func StatusText(hasCapacity bool) string {
	if hasCapacity {
		return "Available"
	}
	return "Fully Booked"
}
