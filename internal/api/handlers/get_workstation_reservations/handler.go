package get_workstation_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
	"github.com/eduhub/WSB-BookingService/internal/api/middleware"
	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidWorkstationID = "некорректный ID рабочего места"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgWorkstationNotFound  = "рабочее место не найдено"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workstations/{workstationId}/reservations
// Query params: date (required, YYYY-MM-DD), includeInactive (опционально, true/false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
		return
	}

	vars := mux.Vars(r)
	workstationID, err := strconv.ParseInt(vars["workstationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /workstations/{id}/reservations - Invalid workstation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkstationID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /workstations/{id}/reservations - Missing date: workstation_id=%d", workstationID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /workstations/{id}/reservations - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.GetWorkstationDay(r.Context(), &models.GetWorkstationDayRequest{
		WorkstationID:   workstationID,
		ActorID:         actorID,
		Date:            date,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrWorkstationNotFound):
			h.logger.Warn("GET /workstations/{id}/reservations - Workstation not found: workstation_id=%d",
				workstationID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("GET /workstations/{id}/reservations - Access denied: workstation_id=%d, actor_id=%d",
				workstationID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /workstations/{id}/reservations - Failed to get reservations: workstation_id=%d, error=%v",
				workstationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workstations/{id}/reservations - Reservations retrieved: workstation_id=%d, date=%s, count=%d",
		workstationID, dateStr, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
