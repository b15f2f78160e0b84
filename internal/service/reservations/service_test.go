package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	reservationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/reservation"
	userClient "github.com/eduhub/WSB-BookingService/internal/integrations/userservice"
	"github.com/eduhub/WSB-BookingService/internal/policy"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
	"github.com/eduhub/WSB-BookingService/internal/service/reservations/models"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

const (
	ownerID   int64 = 42
	studentID int64 = 70
	managerID int64 = 60
	adminID   int64 = 50
)

// --- моки ---

type cancelWithReasonCall struct {
	id          int64
	reason      string
	cancelledBy int64
}

type mockReservationRepo struct {
	byID map[int64]*domain.Reservation
	day  []*domain.Reservation

	cancelled         []int64
	cancelledReason   *cancelWithReasonCall
	updatedStatus     *domain.ReservationStatus
	updatedInterval   *[2]types.TimeString
	deleted           []int64
	updateIntervalErr error
}

func (m *mockReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockReservationRepo) GetByUser(_ context.Context, _ domain.UserReservationsFilter) ([]*domain.Reservation, error) {
	return nil, nil
}

func (m *mockReservationRepo) GetByWorkstationAndDate(_ context.Context, _ domain.WorkstationDayFilter) ([]*domain.Reservation, error) {
	return m.day, nil
}

func (m *mockReservationRepo) UpdateInterval(_ context.Context, id int64, startTime, endTime types.TimeString, _ *string) error {
	if m.updateIntervalErr != nil {
		return m.updateIntervalErr
	}
	m.updatedInterval = &[2]types.TimeString{startTime, endTime}
	if r, ok := m.byID[id]; ok {
		r.StartTime = startTime
		r.EndTime = endTime
	}
	return nil
}

func (m *mockReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	m.updatedStatus = &status
	if r, ok := m.byID[id]; ok {
		r.Status = status
	}
	return nil
}

func (m *mockReservationRepo) Cancel(_ context.Context, id int64) error {
	m.cancelled = append(m.cancelled, id)
	return nil
}

func (m *mockReservationRepo) CancelWithReason(_ context.Context, id int64, reason string, cancelledBy int64) error {
	m.cancelledReason = &cancelWithReasonCall{id: id, reason: reason, cancelledBy: cancelledBy}
	return nil
}

func (m *mockReservationRepo) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockWorkstationRepo struct {
	workstation *domain.Workstation
	err         error
}

func (m *mockWorkstationRepo) GetByID(_ context.Context, _ int64) (*domain.Workstation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.workstation, nil
}

type mockUserClient struct {
	users map[int64]*userClient.User
}

func (m *mockUserClient) GetUser(_ context.Context, userID int64) (*userClient.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, userClient.ErrUserNotFound
	}
	return u, nil
}

type mockTxManager struct{}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

// --- окружение ---

type testEnv struct {
	svc     *Service
	resRepo *mockReservationRepo
	now     time.Time
	bookDay time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	generator, err := scheduling.NewGenerator(types.TimeString("08:00"), types.TimeString("20:00"), 60)
	require.NoError(t, err)

	rules := policy.DefaultRules()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	bookDay := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)

	resRepo := &mockReservationRepo{
		byID: map[int64]*domain.Reservation{
			1: {
				ID:              1,
				UserID:          ownerID,
				WorkstationID:   7,
				ReservationDate: bookDay,
				StartTime:       types.TimeString("10:00"),
				EndTime:         types.TimeString("12:00"),
				Status:          domain.StatusPending,
				UserName:        "Анна Лапина",
				UserRole:        domain.RoleStudent,
			},
		},
	}

	users := &mockUserClient{
		users: map[int64]*userClient.User{
			ownerID:   {ID: ownerID, DisplayName: "Анна Лапина", Role: "STUDENT", Active: true},
			studentID: {ID: studentID, DisplayName: "Петр Громов", Role: "STUDENT", Active: true},
			managerID: {ID: managerID, DisplayName: "Ирина Соколова", Role: "CENTER_MANAGER", Active: true},
			adminID:   {ID: adminID, DisplayName: "Администратор", Role: "ADMIN", Active: true},
		},
	}

	wsRepo := &mockWorkstationRepo{
		workstation: &domain.Workstation{ID: 7, RoomID: 1, Name: "WS-7", Status: domain.WorkstationAvailable},
	}

	svc := NewService(
		resRepo,
		wsRepo,
		users,
		&mockTxManager{},
		policy.NewDurationPolicy(rules),
		policy.NewCancellationPolicy(rules),
		generator,
		&nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: now})

	return &testEnv{svc: svc, resRepo: resRepo, now: now, bookDay: bookDay}
}

func (e *testEnv) reservation(id int64) *domain.Reservation {
	return e.resRepo.byID[id]
}

// --- тесты ---

func TestService_GetByID(t *testing.T) {
	t.Run("владелец читает свою бронь", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetByID(context.Background(), 1, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("модератор читает чужую бронь", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetByID(context.Background(), 1, managerID)
		require.NoError(t, err)
		assert.Equal(t, int64(ownerID), resp.UserID)
	})

	t.Run("чужой студент не видит бронь", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(context.Background(), 1, studentID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("бронь не найдена", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(context.Background(), 404, ownerID)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("эффективный статус confirmed с истекшим интервалом", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed
		env.svc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 9, 16, 13, 0, 0, 0, time.UTC),
		})

		resp, err := env.svc.GetByID(context.Background(), 1, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("владелец отменяет заранее", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: ownerID})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, env.resRepo.cancelled)
	})

	t.Run("владелец внутри окна блокировки", func(t *testing.T) {
		env := newTestEnv(t)
		env.svc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 9, 16, 9, 30, 0, 0, time.UTC),
		})

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: ownerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, env.resRepo.cancelled)
	})

	t.Run("модератор центра отменяет чужую бронь без причины", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: managerID})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, env.resRepo.cancelled)
	})

	t.Run("привилегированная роль направляется на путь с причиной", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: adminID})
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Empty(t, env.resRepo.cancelled)
	})

	t.Run("чужой студент не отменяет", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: studentID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("терминальная бронь", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusCancelled

		err := env.svc.Cancel(context.Background(), 1, &models.CancelRequest{ActorID: ownerID})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestService_CancelWithReason(t *testing.T) {
	const reason = "нарушение правил пользования центром"

	t.Run("админ отменяет с причиной", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.CancelWithReason(context.Background(), 1, &models.CancelWithReasonRequest{
			ActorID: adminID,
			Reason:  reason,
		})
		require.NoError(t, err)

		// Причина сохраняется дословно вместе с тем, кто отменил
		require.NotNil(t, env.resRepo.cancelledReason)
		assert.Equal(t, int64(1), env.resRepo.cancelledReason.id)
		assert.Equal(t, reason, env.resRepo.cancelledReason.reason)
		assert.Equal(t, adminID, env.resRepo.cancelledReason.cancelledBy)
	})

	t.Run("слишком короткая причина", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.CancelWithReason(context.Background(), 1, &models.CancelWithReasonRequest{
			ActorID: adminID,
			Reason:  "short",
		})
		assert.ErrorIs(t, err, ErrInvalidReason)
		assert.Nil(t, env.resRepo.cancelledReason)
	})

	t.Run("роль без привилегии не использует путь с причиной", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.CancelWithReason(context.Background(), 1, &models.CancelWithReasonRequest{
			ActorID: managerID,
			Reason:  reason,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("владелец-студент не использует путь с причиной", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.CancelWithReason(context.Background(), 1, &models.CancelWithReasonRequest{
			ActorID: ownerID,
			Reason:  reason,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_SetStatus(t *testing.T) {
	t.Run("модератор подтверждает pending", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "confirmed",
		})
		require.NoError(t, err)
		require.NotNil(t, env.resRepo.updatedStatus)
		assert.Equal(t, domain.StatusConfirmed, *env.resRepo.updatedStatus)
	})

	t.Run("владелец не подтверждает свою бронь", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: ownerID,
			Status:  "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("модератор отклоняет pending", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "rejected",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, *env.resRepo.updatedStatus)
	})

	t.Run("владелец отменяет через смену статуса", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: ownerID,
			Status:  "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, *env.resRepo.updatedStatus)
	})

	t.Run("отмена через смену статуса внутри окна блокировки", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed
		// За полчаса до начала: прямой маршрут отмены это запрещает,
		// смена статуса не должна давать обходного пути
		env.svc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 9, 16, 9, 30, 0, 0, time.UTC),
		})

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: ownerID,
			Status:  "cancelled",
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Nil(t, env.resRepo.updatedStatus)
	})

	t.Run("привилегированная роль отменяет только с причиной", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: adminID,
			Status:  "cancelled",
		})
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Nil(t, env.resRepo.updatedStatus)
	})

	t.Run("чужой студент не отменяет через смену статуса", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: studentID,
			Status:  "cancelled",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("недопустимый переход", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusCancelled

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "confirmed",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("переход pending -> completed запрещен", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "completed",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("завершение до конца интервала", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "completed",
		})
		assert.ErrorIs(t, err, ErrNotFinishedYet)
	})

	t.Run("завершение после конца интервала", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed
		env.svc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC),
		})

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, *env.resRepo.updatedStatus)
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.SetStatus(context.Background(), 1, &models.SetStatusRequest{
			ActorID: managerID,
			Status:  "archived",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("владелец переносит pending бронь", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("16:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "14:00", resp.StartTime)
		assert.Equal(t, "16:00", resp.EndTime)
		require.NotNil(t, env.resRepo.updatedInterval)
	})

	t.Run("собственная бронь исключается из проверки пересечений", func(t *testing.T) {
		env := newTestEnv(t)
		current := *env.reservation(1)
		env.resRepo.day = []*domain.Reservation{&current}

		// Новый интервал пересекается со старым положением этой же брони
		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("13:00"),
		})
		assert.NoError(t, err)
	})

	t.Run("пересечение с чужой бронью", func(t *testing.T) {
		env := newTestEnv(t)
		env.resRepo.day = []*domain.Reservation{
			{
				ID:              2,
				UserID:          studentID,
				WorkstationID:   7,
				ReservationDate: env.bookDay,
				StartTime:       types.TimeString("14:00"),
				EndTime:         types.TimeString("16:00"),
				Status:          domain.StatusConfirmed,
			},
		}

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("15:00"),
			EndTime:   types.TimeString("17:00"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("проигранная гонка за слот при переносе", func(t *testing.T) {
		env := newTestEnv(t)
		env.resRepo.updateIntervalErr = reservationRepo.ErrSlotTaken

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("16:00"),
		})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("подтвержденная бронь не редактируется", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("16:00"),
		})
		assert.ErrorIs(t, err, ErrCannotEdit)
	})

	t.Run("редактирует только владелец", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   managerID,
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("16:00"),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("новый интервал вне сетки слотов", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("14:30"),
			EndTime:   types.TimeString("16:30"),
		})
		assert.ErrorIs(t, err, ErrUnalignedSlot)
	})

	t.Run("новый интервал превышает лимит роли", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("14:00"),
			EndTime:   types.TimeString("17:00"),
		})
		assert.ErrorIs(t, err, ErrDurationExceeded)
	})

	t.Run("конец не позже начала", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Update(context.Background(), 1, &models.UpdateReservationRequest{
			ActorID:   ownerID,
			StartTime: types.TimeString("16:00"),
			EndTime:   types.TimeString("14:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("владелец удаляет отмененную бронь", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusCancelled

		err := env.svc.Delete(context.Background(), 1, ownerID)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, env.resRepo.deleted)
	})

	t.Run("активную бронь удалить нельзя", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Delete(context.Background(), 1, ownerID)
		assert.ErrorIs(t, err, ErrCannotDelete)
		assert.Empty(t, env.resRepo.deleted)
	})

	t.Run("подтвержденная с истекшим интервалом удаляется", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusConfirmed
		env.svc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 9, 16, 13, 0, 0, 0, time.UTC),
		})

		err := env.svc.Delete(context.Background(), 1, ownerID)
		assert.NoError(t, err)
	})

	t.Run("модератор удаляет чужую терминальную бронь", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusRejected

		err := env.svc.Delete(context.Background(), 1, managerID)
		assert.NoError(t, err)
	})

	t.Run("чужой студент не удаляет", func(t *testing.T) {
		env := newTestEnv(t)
		env.reservation(1).Status = domain.StatusCancelled

		err := env.svc.Delete(context.Background(), 1, studentID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_GetUserReservations(t *testing.T) {
	t.Run("неизвестный статус в фильтре", func(t *testing.T) {
		env := newTestEnv(t)
		status := "archived"

		_, err := env.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID:  ownerID,
			ActorID: ownerID,
			Status:  &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("чужую историю видит только модератор", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID:  ownerID,
			ActorID: studentID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = env.svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID:  ownerID,
			ActorID: managerID,
		})
		assert.NoError(t, err)
	})
}

func TestService_GetWorkstationDay(t *testing.T) {
	t.Run("доступно только модераторам", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetWorkstationDay(context.Background(), &models.GetWorkstationDayRequest{
			WorkstationID: 7,
			ActorID:       ownerID,
			Date:          env.bookDay,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)

		resp, err := env.svc.GetWorkstationDay(context.Background(), &models.GetWorkstationDayRequest{
			WorkstationID: 7,
			ActorID:       managerID,
			Date:          env.bookDay,
		})
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}
