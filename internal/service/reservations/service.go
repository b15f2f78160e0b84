package reservations

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	reservationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/reservation"
	workstationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/workstation"
	userClient "github.com/eduhub/WSB-BookingService/internal/integrations/userservice"
	"github.com/eduhub/WSB-BookingService/internal/policy"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// Service сервис для работы с бронированиями рабочих мест:
// чтение, редактирование, переходы статусов, отмена и удаление.
// Создание брони вынесено в отдельный usecase из-за объема проверок.
type Service struct {
	reservationRepo    ReservationRepository
	workstationRepo    WorkstationRepository
	userClient         UserServiceClient
	txManager          TransactionManager
	durationPolicy     *policy.DurationPolicy
	cancellationPolicy *policy.CancellationPolicy
	generator          *scheduling.Generator
	timeProvider       TimeProvider
	logger             Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	workstationRepo WorkstationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	durationPolicy *policy.DurationPolicy,
	cancellationPolicy *policy.CancellationPolicy,
	generator *scheduling.Generator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo:    reservationRepo,
		workstationRepo:    workstationRepo,
		userClient:         userClient,
		txManager:          txManager,
		durationPolicy:     durationPolicy,
		cancellationPolicy: cancellationPolicy,
		generator:          generator,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID.
// Пользователь видит только свою бронь; роли с правом модерации — любую.
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d", id, actorID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if reservation.UserID != actorID {
		if _, err := s.requireModerator(ctx, "GetByID", actorID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now()), nil
}

// GetUserReservations получает историю броней пользователя.
// Опционально фильтрует по статусу или оставляет только активные.
// Чужую историю видят только роли с правом модерации.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, actor=%d", req.UserID, req.ActorID)

	if req.ActorID != req.UserID {
		if _, err := s.requireModerator(ctx, "GetUserReservations", req.ActorID); err != nil {
			return nil, err
		}
	}

	filter := domain.UserReservationsFilter{
		UserID:     req.UserID,
		ActiveOnly: req.ActiveOnly,
	}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations, s.timeProvider.Now()), nil
}

// GetWorkstationDay получает брони рабочего места на дату.
// Управленческая выборка, доступна только ролям с правом модерации.
func (s *Service) GetWorkstationDay(ctx context.Context, req *models.GetWorkstationDayRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetWorkstationDay: fetching reservations for workstation=%d, date=%s, actor=%d",
		req.WorkstationID, req.Date.Format(domain.DateFormat), req.ActorID)

	if _, err := s.requireModerator(ctx, "GetWorkstationDay", req.ActorID); err != nil {
		return nil, err
	}

	if _, err := s.workstationRepo.GetByID(ctx, req.WorkstationID); err != nil {
		if errors.Is(err, workstationRepo.ErrWorkstationNotFound) {
			s.logger.Warn("GetWorkstationDay: workstation id=%d not found", req.WorkstationID)
			return nil, ErrWorkstationNotFound
		}
		s.logger.Error("GetWorkstationDay: workstation repository error for id=%d: %v", req.WorkstationID, err)
		return nil, fmt.Errorf("%w: GetWorkstationDay - workstation repository error: %v", ErrInternal, err)
	}

	reservations, err := s.reservationRepo.GetByWorkstationAndDate(ctx, domain.WorkstationDayFilter{
		WorkstationID:   req.WorkstationID,
		Date:            req.Date,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("GetWorkstationDay: repository error for workstation=%d: %v", req.WorkstationID, err)
		return nil, fmt.Errorf("%w: GetWorkstationDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWorkstationDay: fetched %d reservations for workstation=%d", len(reservations), req.WorkstationID)
	return models.FromDomainReservationList(reservations, s.timeProvider.Now()), nil
}

// Cancel отменяет бронь по обычному пути: причина не фиксируется.
// Путь доступен владельцу брони и модераторам; роли, обязанные указывать
// причину, направляются на CancelWithReason.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by actor=%d", id, req.ActorID)

	reservation, err := s.getReservation(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	actorRole, err := s.resolveActorRole(ctx, "Cancel", req.ActorID)
	if err != nil {
		return err
	}

	path, err := s.cancellationPolicy.CanCancel(reservation, req.ActorID, actorRole, s.timeProvider.Now())
	if err != nil {
		return s.mapCancelError(id, req.ActorID, err)
	}
	if path == policy.PathWithReason {
		s.logger.Warn("Cancel: actor=%d with role=%s must provide a reason for reservation id=%d",
			req.ActorID, actorRole, id)
		return ErrReasonRequired
	}

	if err := s.reservationRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

// CancelWithReason отменяет бронь по привилегированному пути.
// Причина обязательна, сохраняется дословно вместе с тем, кто и когда отменил.
// Путь доступен только ролям с правом отмены любой брони.
func (s *Service) CancelWithReason(ctx context.Context, id int64, req *models.CancelWithReasonRequest) error {
	s.logger.Info("CancelWithReason: cancelling reservation id=%d by actor=%d", id, req.ActorID)

	reservation, err := s.getReservation(ctx, "CancelWithReason", id)
	if err != nil {
		return err
	}

	actorRole, err := s.resolveActorRole(ctx, "CancelWithReason", req.ActorID)
	if err != nil {
		return err
	}

	path, err := s.cancellationPolicy.CanCancel(reservation, req.ActorID, actorRole, s.timeProvider.Now())
	if err != nil {
		return s.mapCancelError(id, req.ActorID, err)
	}
	if path != policy.PathWithReason {
		s.logger.Warn("CancelWithReason: actor=%d with role=%s is not allowed to use the reason path",
			req.ActorID, actorRole)
		return ErrAccessDenied
	}

	if err := policy.ValidateReason(req.Reason); err != nil {
		s.logger.Warn("CancelWithReason: invalid reason for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInvalidReason, err)
	}

	if err := s.reservationRepo.CancelWithReason(ctx, id, req.Reason, req.ActorID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("CancelWithReason: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelWithReason - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelWithReason: successfully cancelled reservation id=%d by actor=%d", id, req.ActorID)
	return nil
}

// SetStatus переводит бронь в новый статус по таблице жизненного цикла.
// Подтверждение, отклонение и завершение требуют права модерации;
// отмена проверяется политикой отмены, как и на маршрутах отмены.
// Завершение фиксируется только после истечения интервала брони.
func (s *Service) SetStatus(ctx context.Context, id int64, req *models.SetStatusRequest) error {
	s.logger.Info("SetStatus: updating reservation id=%d to status=%s by actor=%d", id, req.Status, req.ActorID)

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservation, err := s.getReservation(ctx, "SetStatus", id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(reservation.Status, newStatus) {
		s.logger.Warn("SetStatus: transition %s -> %s is not allowed for reservation id=%d",
			reservation.Status, newStatus, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
	}

	if domain.TransitionRequiresModerator(reservation.Status, newStatus) {
		if _, err := s.requireModerator(ctx, "SetStatus", req.ActorID); err != nil {
			return err
		}
	} else {
		// Единственный немодераторский переход — отмена. Она проходит через
		// политику отмены с теми же проверками, что и у маршрутов отмены:
		// окно блокировки и владение нельзя обойти сменой статуса
		actorRole, err := s.resolveActorRole(ctx, "SetStatus", req.ActorID)
		if err != nil {
			return err
		}
		path, err := s.cancellationPolicy.CanCancel(reservation, req.ActorID, actorRole, s.timeProvider.Now())
		if err != nil {
			return s.mapCancelError(id, req.ActorID, err)
		}
		if path == policy.PathWithReason {
			s.logger.Warn("SetStatus: actor=%d with role=%s must cancel with a reason", req.ActorID, actorRole)
			return ErrReasonRequired
		}
	}

	if newStatus == domain.StatusCompleted && reservation.EndsInFuture(s.timeProvider.Now()) {
		s.logger.Warn("SetStatus: reservation id=%d has not finished yet", id)
		return ErrNotFinishedYet
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("SetStatus: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStatus: successfully updated reservation id=%d to status=%s", id, newStatus)
	return nil
}

// Update редактирует интервал брони, пока она в статусе pending.
// Новый интервал проходит те же проверки сетки и длительности, что и при
// создании; пересечения проверяются в serializable-транзакции с исключением
// собственной брони из снимка.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Update: editing reservation id=%d by actor=%d", id, req.ActorID)

	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("Update: invalid interval for reservation id=%d: %v", id, err)
		return nil, err
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("Update: notes too long for reservation id=%d", id)
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	reservation, err := s.getReservation(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	// Редактирование доступно только владельцу
	if reservation.UserID != req.ActorID {
		s.logger.Warn("Update: actor=%d is not the owner of reservation id=%d", req.ActorID, id)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if !reservation.CanBeEdited(now) {
		s.logger.Warn("Update: reservation id=%d cannot be edited, status=%s", id, reservation.Status)
		return nil, ErrCannotEdit
	}

	if err := s.validateSlotGrid(req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("Update: slot grid check failed for reservation id=%d: %v", id, err)
		return nil, err
	}

	if err := s.durationPolicy.Validate(reservation.UserRole, req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("Update: duration check failed for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrDurationExceeded, err)
	}

	// Пересечения проверяются по снимку дня под FOR UPDATE; собственная
	// бронь исключается, иначе редактирование конфликтовало бы само с собой
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayReservations, err := s.reservationRepo.GetByWorkstationAndDate(txCtx, domain.WorkstationDayFilter{
			WorkstationID: reservation.WorkstationID,
			Date:          reservation.ReservationDate,
		})
		if err != nil {
			return fmt.Errorf("%w: Update - day snapshot: %v", ErrInternal, err)
		}

		if scheduling.HasConflict(req.StartTime, req.EndTime, dayReservations, &reservation.ID) {
			return ErrSlotNotAvailable
		}

		if err := s.reservationRepo.UpdateInterval(txCtx, id, req.StartTime, req.EndTime, req.Notes); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			s.logger.Warn("Update: new interval for reservation id=%d is not available", id)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Update: transaction error for reservation id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.getReservation(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated reservation id=%d to %s-%s", id, req.StartTime, req.EndTime)
	return models.FromDomainReservation(updated, now), nil
}

// Delete физически удаляет бронь.
// Удалять можно только завершенные записи: отмененные, отклоненные,
// завершенные и подтвержденные с истекшим интервалом.
// Доступно владельцу и ролям с правом модерации.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	s.logger.Info("Delete: deleting reservation id=%d by actor=%d", id, actorID)

	reservation, err := s.getReservation(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if reservation.UserID != actorID {
		if _, err := s.requireModerator(ctx, "Delete", actorID); err != nil {
			return err
		}
	}

	if !reservation.CanBeDeleted(s.timeProvider.Now()) {
		s.logger.Warn("Delete: reservation id=%d is still active, status=%s", id, reservation.Status)
		return ErrCannotDelete
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// resolveActorRole получает роль актора через UserService
func (s *Service) resolveActorRole(ctx context.Context, op string, actorID int64) (domain.Role, error) {
	user, err := s.userClient.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("%s: actor id=%d not found", op, actorID)
			return "", ErrUserNotFound
		}
		s.logger.Error("%s: failed to get actor id=%d: %v", op, actorID, err)
		return "", fmt.Errorf("%w: %s - failed to get actor: %v", ErrInternal, op, err)
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		s.logger.Error("%s: actor id=%d has unknown role=%s", op, actorID, user.Role)
		return "", fmt.Errorf("%w: %s - unknown actor role: %v", ErrInternal, op, err)
	}

	return role, nil
}

// requireModerator проверяет, что роль актора дает право модерации
func (s *Service) requireModerator(ctx context.Context, op string, actorID int64) (domain.Role, error) {
	role, err := s.resolveActorRole(ctx, op, actorID)
	if err != nil {
		return "", err
	}

	if !role.Policy().CanModerate {
		s.logger.Warn("%s: actor=%d with role=%s has no moderation rights", op, actorID, role)
		return "", ErrAccessDenied
	}

	return role, nil
}

// mapCancelError транслирует ошибки политики отмены в ошибки сервиса
func (s *Service) mapCancelError(id, actorID int64, err error) error {
	switch {
	case errors.Is(err, policy.ErrAlreadyTerminal):
		s.logger.Warn("Cancel: reservation id=%d is already terminal", id)
		return ErrCannotCancel
	case errors.Is(err, policy.ErrCancellationLocked):
		s.logger.Warn("Cancel: reservation id=%d is inside the cancellation lock window", id)
		return fmt.Errorf("%w: %v", ErrCannotCancel, err)
	case errors.Is(err, policy.ErrNotOwner):
		s.logger.Warn("Cancel: actor=%d is not allowed to cancel reservation id=%d", actorID, id)
		return ErrAccessDenied
	default:
		s.logger.Error("Cancel: policy error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: cancellation policy: %v", ErrInternal, err)
	}
}

// validateInterval проверяет структуру интервала редактирования
func validateInterval(start, end types.TimeString) error {
	if start.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if end.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return nil
}

// validateSlotGrid проверяет, что интервал лежит в часах работы и начало
// совпадает с сеткой слотов
func (s *Service) validateSlotGrid(start, end types.TimeString) error {
	if start.IsBefore(s.generator.OpenTime()) || end.IsAfter(s.generator.CloseTime()) {
		return fmt.Errorf("%w: operating hours are %s - %s",
			ErrOutsideOperatingHours, s.generator.OpenTime(), s.generator.CloseTime())
	}

	offset, err := start.SubMinutes(s.generator.OpenTime())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if offset%s.generator.SlotDuration() != 0 {
		return fmt.Errorf("%w: slots start every %d minutes from %s",
			ErrUnalignedSlot, s.generator.SlotDuration(), s.generator.OpenTime())
	}

	return nil
}
