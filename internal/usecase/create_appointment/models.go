package create_appointment

import "time"

// Request модель запроса на бронирование записи
type Request struct {
	ClientName      string  // Имя клиента
	ClientPhone     string  // Телефон клиента
	ClientAddress   string  // Адрес клиента
	CarLicense      string  // Госномер автомобиля
	CarEngine       string  // Номер двигателя
	AppointmentDate string  // Календарная дата "2025-10-15" (парсится внутри usecase)
	MechanicID      int64   // ID механика
	Notes           *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью и обновлёнными счётчиками
type Response struct {
	ID              int64     // ID созданной записи
	MechanicID      int64     // ID механика
	MechanicName    string    // Имя механика
	ClientName      string    // Имя клиента (нормализованное)
	ClientPhone     string    // Телефон клиента
	ClientAddress   string    // Адрес клиента
	CarLicense      string    // Госномер (uppercase)
	CarEngine       string    // Номер двигателя (uppercase)
	Notes           *string   // Заметки
	AppointmentDate time.Time // Дата записи
	Status          string    // Статус (всегда confirmed при создании)
	CreatedAt       time.Time // Время создания
	UpdatedAt       time.Time // Время обновления

	SlotUpdate SlotUpdateInfo // Обновление счётчиков слотов
}

// SlotUpdateInfo результат изменения счётчика слотов механика
type SlotUpdateInfo struct {
	MechanicID             int64
	MechanicName           string
	PreviousAvailableSlots int
	CurrentAvailableSlots  int
	TotalSlots             int
	SlotChange             int
}
