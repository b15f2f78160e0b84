package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
	"github.com/eduhub/WSB-BookingService/internal/api/middleware"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID  = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTime           = "некорректный формат времени, ожидается HH:MM"
	msgNotFound              = "бронирование не найдено"
	msgForbidden             = "доступ запрещен"
	msgCannotEdit            = "редактировать можно только неподтвержденную бронь"
	msgSlotNotAvailable      = "выбранный временной слот недоступен"
	msgDurationExceeded      = "превышена максимальная длительность брони для вашей роли"
	msgOutsideOperatingHours = "интервал выходит за часы работы центра"
	msgUnalignedSlot         = "начало брони не совпадает с сеткой слотов"
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

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actorID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse times: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Update(r.Context(), reservationID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: reservation_id=%d, actor_id=%d",
				reservationID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotEdit):
			h.logger.Warn("PATCH /reservations/{id} - Cannot edit: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgCannotEdit)

		case errors.Is(err, reservations.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /reservations/{id} - Slot not available: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, reservations.ErrDurationExceeded):
			h.logger.Warn("PATCH /reservations/{id} - Duration exceeded: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDurationExceeded)

		case errors.Is(err, reservations.ErrOutsideOperatingHours):
			h.logger.Warn("PATCH /reservations/{id} - Outside operating hours: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, reservations.ErrUnalignedSlot):
			h.logger.Warn("PATCH /reservations/{id} - Unaligned slot: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgUnalignedSlot)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Reservation updated: reservation_id=%d, actor_id=%d",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
