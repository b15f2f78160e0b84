package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	reservationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/reservation"
	workstationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/workstation"
	userClient "github.com/eduhub/WSB-BookingService/internal/integrations/userservice"
	"github.com/eduhub/WSB-BookingService/internal/policy"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
)

// UseCase use case создания бронирования.
// Оркестрирует проверки: структурная валидация, политика длительности,
// политика cooldown, advisory-проверка пересечений — и только потом запись.
// Все проверки идут по снятому состоянию и инжектированному "сейчас";
// побочных эффектов до последнего шага нет.
type UseCase struct {
	reservationRepo ReservationRepository
	workstationRepo WorkstationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	generator       *scheduling.Generator
	durationPolicy  *policy.DurationPolicy
	cooldownPolicy  *policy.CooldownPolicy
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	workstationRepo WorkstationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	generator *scheduling.Generator,
	durationPolicy *policy.DurationPolicy,
	cooldownPolicy *policy.CooldownPolicy,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		workstationRepo: workstationRepo,
		userClient:      userClient,
		txManager:       txManager,
		generator:       generator,
		durationPolicy:  durationPolicy,
		cooldownPolicy:  cooldownPolicy,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Запись идет в сериализуемой транзакции поверх FOR UPDATE снапшота:
// авторитетная проверка пересечений происходит на коммите, advisory-проверка
// здесь лишь сокращает путь до отказа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, workstation=%d, date=%s, interval=%s-%s",
		req.UserID, req.WorkstationID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем пользователя и его роль
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		if errors.Is(err, userClient.ErrServiceUnavailable) {
			uc.logger.Error("CreateReservation: user service unavailable: %v", err)
			return nil, ErrUserServiceUnavailable
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.Active {
		uc.logger.Warn("CreateReservation: user id=%d is inactive", req.UserID)
		return nil, ErrUserInactive
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		uc.logger.Error("CreateReservation: user id=%d has unknown role %q", req.UserID, user.Role)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Структурные проверки даты и интервала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	startsAt, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateStartNotice(startsAt, now, uc.settings.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateReservation: start notice validation failed: %v", err)
		return nil, err
	}

	if err := validateSlotGrid(req.StartTime, req.EndTime, uc.generator); err != nil {
		uc.logger.Warn("CreateReservation: slot grid validation failed: %v", err)
		return nil, err
	}

	// 5. Политика длительности (лимит зависит от роли)
	if err := uc.durationPolicy.Validate(role, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateReservation: duration policy rejected user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 6. Политика cooldown: по всей истории пользователя,
	// не только по целевому рабочему месту
	history, err := uc.reservationRepo.GetByUser(ctx, domain.UserReservationsFilter{UserID: req.UserID})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get user history: %v", err)
		return nil, fmt.Errorf("%w: failed to get user history: %v", ErrInternal, err)
	}

	if err := uc.cooldownPolicy.CanMakeReservation(role, history, startsAt, now); err != nil {
		uc.logger.Warn("CreateReservation: cooldown policy rejected user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 7. Проверяем рабочее место
	ws, err := uc.workstationRepo.GetByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, workstationRepo.ErrWorkstationNotFound) {
			uc.logger.Warn("CreateReservation: workstation id=%d not found", req.WorkstationID)
			return nil, ErrWorkstationNotFound
		}
		uc.logger.Error("CreateReservation: failed to get workstation id=%d: %v", req.WorkstationID, err)
		return nil, fmt.Errorf("%w: failed to get workstation: %v", ErrInternal, err)
	}
	if !ws.IsBookable() {
		uc.logger.Warn("CreateReservation: workstation id=%d is not bookable, status=%s", ws.ID, ws.Status)
		return nil, ErrWorkstationUnavailable
	}

	status := domain.StatusPending
	if uc.settings.AutoConfirm {
		status = domain.StatusConfirmed
	}

	var result *domain.Reservation

	// 8. Сериализуемая транзакция: снапшот дня с блокировкой,
	// advisory-проверка пересечений, запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayReservations, err := uc.reservationRepo.GetByWorkstationAndDate(txCtx, domain.WorkstationDayFilter{
			WorkstationID: req.WorkstationID,
			Date:          req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get day reservations: %v", err)
			return fmt.Errorf("%w: failed to get day reservations: %v", ErrInternal, err)
		}

		if scheduling.HasConflict(req.StartTime, req.EndTime, dayReservations, nil) {
			uc.logger.Warn("CreateReservation: slot %s-%s already taken on workstation=%d",
				req.StartTime, req.EndTime, req.WorkstationID)
			return ErrSlotNotAvailable
		}

		reservation := &domain.Reservation{
			UserID:          req.UserID,
			WorkstationID:   req.WorkstationID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Status:          status,
			// Денормализация данных пользователя для истории
			UserName: user.DisplayName,
			UserRole: role,
			Notes:    req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Нарушение exclusion-ограничения — проигранная гонка за слот
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: lost slot race on workstation=%d", req.WorkstationID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, status=%s", result.ID, result.Status)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		WorkstationID:   result.WorkstationID,
		ReservationDate: result.ReservationDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Status:          string(result.Status),
		UserName:        result.UserName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
