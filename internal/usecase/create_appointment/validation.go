package create_appointment

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/m04kA/SMC-GarageService/internal/domain"
)

// validateRequest проверяет наличие и размер обязательных полей.
// Первая неудачная проверка выигрывает.
func validateRequest(req *Request) error {
	required := []struct {
		name      string
		value     string
		maxLength int
	}{
		{"clientName", req.ClientName, domain.MaxClientNameLength},
		{"clientPhone", req.ClientPhone, domain.MaxClientPhoneLength},
		{"clientAddress", req.ClientAddress, domain.MaxClientAddressLength},
		{"carLicense", req.CarLicense, domain.MaxCarLicenseLength},
		{"carEngine", req.CarEngine, domain.MaxCarEngineLength},
		{"appointmentDate", req.AppointmentDate, len(domain.DateFormat)},
	}

	for _, f := range required {
		trimmed := strings.TrimSpace(f.value)
		if trimmed == "" {
			return fmt.Errorf("%w: missing field: %s", ErrInvalidInput, f.name)
		}
		if len(trimmed) > f.maxLength {
			return fmt.Errorf("%w: field %s exceeds %d characters", ErrInvalidInput, f.name, f.maxLength)
		}
	}

	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanicId must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: field notes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// parseAppointmentDate парсит календарную дату и проверяет, что она не в
// прошлом. Время суток не учитывается: запись на сегодня допустима.
func parseAppointmentDate(raw string, now time.Time) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrInvalidDate, raw)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return date, nil
}

// sanitizeText обрезает пробелы и нейтрализует HTML в свободном тексте
// перед сохранением — защита от инъекции в последующий рендеринг
func sanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// normalizeCode нормализует номерные поля (госномер, номер двигателя):
// trim, uppercase, нейтрализация HTML
func normalizeCode(s string) string {
	return html.EscapeString(strings.ToUpper(strings.TrimSpace(s)))
}
