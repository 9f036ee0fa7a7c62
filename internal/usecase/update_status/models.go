package update_status

import "time"

// Request модель запроса на смену статуса записи
type Request struct {
	AppointmentID int64  // ID записи на ремонт
	Status        string // Новый статус (один из пяти допустимых)

	// MechanicID присутствует, если вызывающая сторона прислала механика в
	// теле запроса. Значение, отличное от текущего механика записи, —
	// попытка переназначения, она всегда отклоняется.
	MechanicID *int64
}

// Response модель ответа со статусным переходом и, если вместимость
// действительно изменилась, обновлением счётчиков
type Response struct {
	AppointmentID  int64     // ID записи
	PreviousStatus string    // Статус до перехода
	NewStatus      string    // Статус после перехода
	UpdatedAt      time.Time // Время применения

	// SlotUpdate присутствует только когда переход пересёк границу
	// категорий (delta != 0)
	SlotUpdate *SlotUpdateInfo
}

// SlotUpdateInfo результат изменения счётчика слотов механика
type SlotUpdateInfo struct {
	MechanicID             int64
	MechanicName           string
	PreviousAvailableSlots int
	CurrentAvailableSlots  int
	TotalSlots             int
	SlotChange             int
	Reason                 string // Человекочитаемый переход, например "confirmed -> completed"
}
