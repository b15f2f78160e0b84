package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{name: "identical intervals", s1: "10:00", e1: "11:00", s2: "10:00", e2: "11:00", want: true},
		{name: "partial overlap", s1: "10:00", e1: "11:00", s2: "10:30", e2: "11:30", want: true},
		{name: "containment", s1: "10:00", e1: "13:00", s2: "11:00", e2: "12:00", want: true},
		{name: "touching boundaries do not overlap", s1: "10:00", e1: "11:00", s2: "11:00", e2: "12:00", want: false},
		{name: "touching boundaries reversed", s1: "11:00", e1: "12:00", s2: "10:00", e2: "11:00", want: false},
		{name: "disjoint", s1: "08:00", e1: "09:00", s2: "12:00", e2: "13:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				types.TimeString(tt.s1), types.TimeString(tt.e1),
				types.TimeString(tt.s2), types.TimeString(tt.e2),
			)
			assert.Equal(t, tt.want, got)
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(
				types.TimeString(tt.s2), types.TimeString(tt.e2),
				types.TimeString(tt.s1), types.TimeString(tt.e1),
			))
		})
	}
}

func activeReservation(id int64, start, end string) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    domain.StatusConfirmed,
	}
}

func TestHasConflict(t *testing.T) {
	day := []*domain.Reservation{
		activeReservation(1, "10:00", "11:00"),
		activeReservation(2, "14:00", "16:00"),
	}

	// 10:30-11:30 пересекается с бронью 10:00-11:00
	assert.True(t, HasConflict(types.TimeString("10:30"), types.TimeString("11:30"), day, nil))

	// 11:00-12:00 стыкуется с концом первой брони, конфликта нет
	assert.False(t, HasConflict(types.TimeString("11:00"), types.TimeString("12:00"), day, nil))

	// Исключение собственной брони: редактирование 10:00-11:00 не
	// конфликтует само с собой
	ownID := int64(1)
	assert.False(t, HasConflict(types.TimeString("10:00"), types.TimeString("11:00"), day, &ownID))
	assert.True(t, HasConflict(types.TimeString("10:00"), types.TimeString("11:00"), day, nil))
}

func TestHasConflict_IgnoresInactive(t *testing.T) {
	cancelled := activeReservation(3, "10:00", "11:00")
	cancelled.Status = domain.StatusCancelled

	rejected := activeReservation(4, "10:00", "11:00")
	rejected.Status = domain.StatusRejected

	day := []*domain.Reservation{cancelled, rejected}
	assert.False(t, HasConflict(types.TimeString("10:00"), types.TimeString("11:00"), day, nil))
}

func TestFindConflict(t *testing.T) {
	day := []*domain.Reservation{
		activeReservation(1, "10:00", "11:00"),
	}

	blocking := FindConflict(types.TimeString("10:30"), types.TimeString("11:30"), day, nil)
	assert.NotNil(t, blocking)
	assert.Equal(t, int64(1), blocking.ID)

	assert.Nil(t, FindConflict(types.TimeString("12:00"), types.TimeString("13:00"), day, nil))
}
