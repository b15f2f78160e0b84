package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/eduhub/WSB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidWorkstationID = "некорректный ID рабочего места"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgWorkstationNotFound  = "рабочее место не найдено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workstations/{workstationId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	workstationID, err := strconv.ParseInt(vars["workstationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workstations/{id}/available-slots - Invalid workstation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkstationID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /workstations/{id}/available-slots - Missing date: workstation_id=%d", workstationID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(workstationID, dateStr)
	if err != nil {
		h.logger.Warn("GET /workstations/{id}/available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrWorkstationNotFound):
			h.logger.Warn("GET /workstations/{id}/available-slots - Workstation not found: workstation_id=%d",
				workstationID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /workstations/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /workstations/{id}/available-slots - Failed to get slots: workstation_id=%d, error=%v",
				workstationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workstations/{id}/available-slots - Slots retrieved: workstation_id=%d, date=%s, count=%d",
		workstationID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
