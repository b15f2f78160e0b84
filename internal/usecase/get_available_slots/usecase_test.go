package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	workstationRepo "github.com/eduhub/WSB-BookingService/internal/infra/storage/workstation"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

type mockReservationRepo struct {
	day []*domain.Reservation
	err error
}

func (m *mockReservationRepo) GetByWorkstationAndDate(_ context.Context, _ domain.WorkstationDayFilter) ([]*domain.Reservation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.day, nil
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

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T, resRepo *mockReservationRepo, wsRepo *mockWorkstationRepo) *UseCase {
	t.Helper()

	generator, err := scheduling.NewGenerator(types.TimeString("08:00"), types.TimeString("20:00"), 60)
	require.NoError(t, err)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	return NewUseCase(resRepo, wsRepo, generator, &nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
}

func TestUseCase_Execute(t *testing.T) {
	day := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	available := &domain.Workstation{ID: 7, RoomID: 1, Name: "WS-7", Status: domain.WorkstationAvailable}

	t.Run("пустой день дает полную сетку", func(t *testing.T) {
		uc := newTestUseCase(t, &mockReservationRepo{}, &mockWorkstationRepo{workstation: available})

		resp, err := uc.Execute(context.Background(), &Request{WorkstationID: 7, Date: day})
		require.NoError(t, err)

		assert.Equal(t, int64(7), resp.WorkstationID)
		require.Len(t, resp.Slots, 12)
		for _, slot := range resp.Slots {
			assert.True(t, slot.Available)
			assert.Nil(t, slot.OccupantName)
		}
	})

	t.Run("бронь закрывает накрытые слоты", func(t *testing.T) {
		resRepo := &mockReservationRepo{
			day: []*domain.Reservation{
				{
					ID:              5,
					UserID:          42,
					WorkstationID:   7,
					ReservationDate: day,
					StartTime:       types.TimeString("10:00"),
					EndTime:         types.TimeString("12:00"),
					Status:          domain.StatusConfirmed,
					UserName:        "Анна Лапина",
				},
			},
		}
		uc := newTestUseCase(t, resRepo, &mockWorkstationRepo{workstation: available})

		resp, err := uc.Execute(context.Background(), &Request{WorkstationID: 7, Date: day})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 12)

		for _, slot := range resp.Slots {
			switch slot.StartTime {
			case types.TimeString("10:00"), types.TimeString("11:00"):
				assert.False(t, slot.Available, "slot %s", slot.StartTime)
				require.NotNil(t, slot.OccupantName)
				assert.Equal(t, "Анна Лапина", *slot.OccupantName)
			default:
				assert.True(t, slot.Available, "slot %s", slot.StartTime)
			}
		}
	})

	t.Run("недоступное рабочее место закрывает всю сетку", func(t *testing.T) {
		maintenance := &domain.Workstation{ID: 7, RoomID: 1, Name: "WS-7", Status: domain.WorkstationMaintenance}
		uc := newTestUseCase(t, &mockReservationRepo{}, &mockWorkstationRepo{workstation: maintenance})

		resp, err := uc.Execute(context.Background(), &Request{WorkstationID: 7, Date: day})
		require.NoError(t, err)

		for _, slot := range resp.Slots {
			assert.False(t, slot.Available)
		}
	})

	t.Run("рабочее место не найдено", func(t *testing.T) {
		wsRepo := &mockWorkstationRepo{err: workstationRepo.ErrWorkstationNotFound}
		uc := newTestUseCase(t, &mockReservationRepo{}, wsRepo)

		_, err := uc.Execute(context.Background(), &Request{WorkstationID: 404, Date: day})
		assert.ErrorIs(t, err, ErrWorkstationNotFound)
	})

	t.Run("некорректный workstationID", func(t *testing.T) {
		uc := newTestUseCase(t, &mockReservationRepo{}, &mockWorkstationRepo{workstation: available})

		_, err := uc.Execute(context.Background(), &Request{WorkstationID: 0, Date: day})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("нулевая дата", func(t *testing.T) {
		uc := newTestUseCase(t, &mockReservationRepo{}, &mockWorkstationRepo{workstation: available})

		_, err := uc.Execute(context.Background(), &Request{WorkstationID: 7})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
