package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(types.TimeString("08:00"), types.TimeString("20:00"), 60)
	require.NoError(t, err)
	return g
}

func availableWorkstation() *domain.Workstation {
	return &domain.Workstation{
		ID:     7,
		RoomID: 1,
		Name:   "WS-07",
		Status: domain.WorkstationAvailable,
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	_, err := NewGenerator(types.TimeString("20:00"), types.TimeString("08:00"), 60)
	assert.Error(t, err)

	_, err = NewGenerator(types.TimeString("08:00"), types.TimeString("20:00"), 0)
	assert.Error(t, err)

	_, err = NewGenerator(types.TimeString("bad"), types.TimeString("20:00"), 60)
	assert.Error(t, err)
}

func TestGenerate_EmptyDay(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := g.Generate(availableWorkstation(), date, nil, now)
	require.NoError(t, err)

	// 08:00-20:00 с часовым шагом — 12 слотов
	require.Len(t, slots, 12)
	assert.Equal(t, "08:00", slots[0].StartTime.String())
	assert.Equal(t, "09:00", slots[0].EndTime.String())
	assert.Equal(t, "19:00", slots[11].StartTime.String())
	assert.Equal(t, "20:00", slots[11].EndTime.String())

	for _, slot := range slots {
		assert.True(t, slot.Available)
		assert.Nil(t, slot.OccupantName)
	}
}

func TestGenerate_MarksConflictingSlots(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	reservations := []*domain.Reservation{
		{
			ID:        1,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("12:00"),
			Status:    domain.StatusConfirmed,
			UserName:  "Мария Ковальчик",
		},
	}

	slots, err := g.Generate(availableWorkstation(), date, reservations, now)
	require.NoError(t, err)
	require.Len(t, slots, 12)

	for _, slot := range slots {
		switch slot.StartTime.String() {
		case "10:00", "11:00":
			assert.False(t, slot.Available, slot.StartTime)
			require.NotNil(t, slot.OccupantName, slot.StartTime)
			assert.Equal(t, "Мария Ковальчик", *slot.OccupantName)
		default:
			assert.True(t, slot.Available, slot.StartTime)
		}
	}
}

func TestGenerate_InactiveReservationsFreeTheSlot(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	reservations := []*domain.Reservation{
		{
			ID:        1,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			Status:    domain.StatusCancelled,
			UserName:  "Мария Ковальчик",
		},
	}

	slots, err := g.Generate(availableWorkstation(), date, reservations, now)
	require.NoError(t, err)

	for _, slot := range slots {
		assert.True(t, slot.Available, slot.StartTime)
	}
}

func TestGenerate_PastDateAllUnavailable(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 16, 8, 0, 0, 0, time.UTC)

	slots, err := g.Generate(availableWorkstation(), date, nil, now)
	require.NoError(t, err)
	require.Len(t, slots, 12)

	for _, slot := range slots {
		assert.False(t, slot.Available, slot.StartTime)
	}
}

func TestGenerate_NonBookableWorkstation(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.WorkstationStatus{
		domain.WorkstationUnavailable,
		domain.WorkstationMaintenance,
	} {
		ws := availableWorkstation()
		ws.Status = status

		slots, err := g.Generate(ws, date, nil, now)
		require.NoError(t, err)
		for _, slot := range slots {
			assert.False(t, slot.Available, "status=%s slot=%s", status, slot.StartTime)
		}
	}
}

func TestGenerate_TodayHidesPastSlots(t *testing.T) {
	g := newTestGenerator(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	// Сейчас 13:30: слоты с началом до 13:30 включительно прошли
	now := time.Date(2026, 9, 15, 13, 30, 0, 0, time.UTC)

	slots, err := g.Generate(availableWorkstation(), date, nil, now)
	require.NoError(t, err)

	for _, slot := range slots {
		if slot.StartTime.IsAfter(types.TimeString("13:30")) {
			assert.True(t, slot.Available, slot.StartTime)
		} else {
			assert.False(t, slot.Available, slot.StartTime)
		}
	}
}

func TestGenerate_GridSkipsPartialTrailingSlot(t *testing.T) {
	// При ширине 90 минут неполный хвостовой слот в сетку не попадает
	g, err := NewGenerator(types.TimeString("09:00"), types.TimeString("13:00"), 90)
	require.NoError(t, err)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	slots, err := g.Generate(availableWorkstation(), date, nil, now)
	require.NoError(t, err)

	// 09:00-10:30 и 10:30-12:00; хвост 12:00-13:30 за закрытие не попадает
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "10:30", slots[0].EndTime.String())
	assert.Equal(t, "10:30", slots[1].StartTime.String())
	assert.Equal(t, "12:00", slots[1].EndTime.String())
}
