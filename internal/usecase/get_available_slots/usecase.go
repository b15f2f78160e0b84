package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	workstationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/workstation"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
)

// UseCase use case получения сетки слотов рабочего места на день
type UseCase struct {
	reservationRepo ReservationRepository
	workstationRepo WorkstationRepository
	generator       *scheduling.Generator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	workstationRepo WorkstationRepository,
	generator *scheduling.Generator,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		workstationRepo: workstationRepo,
		generator:       generator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов.
// Сетка пересчитывается на каждый запрос и не мутирует общее состояние.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: workstation=%d, date=%s",
		req.WorkstationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.WorkstationID <= 0 {
		return nil, fmt.Errorf("%w: workstationID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем рабочее место (статус влияет на доступность всей сетки)
	ws, err := uc.workstationRepo.GetByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, workstationRepo.ErrWorkstationNotFound) {
			uc.logger.Warn("GetAvailableSlots: workstation id=%d not found", req.WorkstationID)
			return nil, ErrWorkstationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get workstation id=%d: %v", req.WorkstationID, err)
		return nil, fmt.Errorf("%w: failed to get workstation: %v", ErrInternal, err)
	}

	// 4. Получаем активные брони на эту дату
	reservations, err := uc.reservationRepo.GetByWorkstationAndDate(ctx, domain.WorkstationDayFilter{
		WorkstationID: req.WorkstationID,
		Date:          req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Генерируем сетку слотов
	slots, err := uc.generator.Generate(ws, req.Date, reservations, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for workstation=%d, date=%s",
		len(slots), req.WorkstationID, req.Date.Format(domain.DateFormat))

	return &Response{
		WorkstationID: req.WorkstationID,
		Date:          req.Date,
		Slots:         slots,
	}, nil
}
