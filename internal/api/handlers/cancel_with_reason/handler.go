package cancel_with_reason

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
	"github.com/eduhub/WSB-BookingService/internal/api/middleware"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "бронирование не может быть отменено"
	msgInvalidReason        = "причина отмены должна содержать от 10 до 500 символов"
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

// CancelWithReasonRequest HTTP request model
type CancelWithReasonRequest struct {
	Reason string `json:"reason"`
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel-with-reason
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req CancelWithReasonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.CancelWithReason(r.Context(), reservationID, &models.CancelWithReasonRequest{
		ActorID: actorID,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Reservation not found: reservation_id=%d",
				reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Access denied: reservation_id=%d, actor_id=%d",
				reservationID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidReason):
			h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Invalid reason: reservation_id=%d",
				reservationID)
			handlers.RespondBadRequest(w, msgInvalidReason)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel-with-reason - Cannot cancel: reservation_id=%d",
				reservationID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel-with-reason - Failed to cancel: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel-with-reason - Reservation cancelled: reservation_id=%d, actor_id=%d",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
