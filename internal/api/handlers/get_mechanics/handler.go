package get_mechanics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GarageService/internal/api/handlers"
	mechanicsService "github.com/m04kA/SMC-GarageService/internal/service/mechanics"
)

const (
	msgInvalidDate = "некорректная дата проверки доступности, ожидается YYYY-MM-DD"
)

type Handler struct {
	service MechanicsService
	logger  Logger
}

func NewHandler(service MechanicsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/mechanics?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	checkDate := r.URL.Query().Get("date")

	result, err := h.service.List(r.Context(), checkDate)
	if err != nil {
		switch {
		case errors.Is(err, mechanicsService.ErrInvalidDate):
			h.logger.Warn("GET /mechanics - Invalid date filter: %s", checkDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /mechanics - Failed to list mechanics: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mechanics - Returned %d mechanics for date=%s", result.Count, result.CheckDate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
