package create_reservation

import (
	"errors"
	"net/http"

	"github.com/eduhub/WSB-BookingService/internal/api/handlers"
	"github.com/eduhub/WSB-BookingService/internal/api/middleware"
	"github.com/eduhub/WSB-BookingService/internal/policy"
	createReservation "github.com/eduhub/WSB-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable      = "выбранный временной слот недоступен"
	msgUserNotFound          = "пользователь не найден"
	msgUserInactive          = "учетная запись деактивирована"
	msgWorkstationNotFound   = "рабочее место не найдено"
	msgWorkstationUnavail    = "рабочее место недоступно для бронирования"
	msgInvalidDate           = "дата бронирования не может быть в прошлом"
	msgTooLateToBook         = "слишком поздно для бронирования этого слота"
	msgOutsideOperatingHours = "интервал выходит за часы работы центра"
	msgUnalignedSlot         = "начало брони не совпадает с сеткой слотов"
	msgDurationExceeded      = "превышена максимальная длительность брони для вашей роли"
	msgActiveExists          = "у вас уже есть активная бронь"
	msgCooldownActive        = "пауза после предыдущей брони еще не истекла"
	msgUserServiceDown       = "сервис пользователей временно недоступен"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			// Ожидаемый исход гонки за слот: клиент перечитывает сетку
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, workstation_id=%d",
				userID, req.WorkstationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrUserInactive):
			h.logger.Warn("POST /reservations - User inactive: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserInactive)

		case errors.Is(err, createReservation.ErrWorkstationNotFound):
			h.logger.Warn("POST /reservations - Workstation not found: workstation_id=%d", req.WorkstationID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, createReservation.ErrWorkstationUnavailable):
			h.logger.Warn("POST /reservations - Workstation not bookable: workstation_id=%d", req.WorkstationID)
			handlers.RespondBadRequest(w, msgWorkstationUnavail)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, createReservation.ErrUnalignedSlot):
			h.logger.Warn("POST /reservations - Unaligned slot: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgUnalignedSlot)

		case errors.Is(err, policy.ErrDurationExceeded), errors.Is(err, policy.ErrInvalidInterval):
			h.logger.Warn("POST /reservations - Duration policy rejected: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgDurationExceeded)

		case errors.Is(err, policy.ErrActiveReservationExists):
			h.logger.Warn("POST /reservations - Active reservation exists: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgActiveExists)

		case errors.Is(err, policy.ErrCooldownActive):
			h.logger.Warn("POST /reservations - Cooldown active: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgCooldownActive)

		case errors.Is(err, createReservation.ErrUserServiceUnavailable):
			h.logger.Error("POST /reservations - UserService unavailable: user_id=%d", userID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUserServiceDown)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, workstation_id=%d",
		result.ID, userID, req.WorkstationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
