package scheduling

import (
	"fmt"
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/ptr"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// Generator генерирует сетку слотов рабочего места на календарный день.
// Чистая функция над переданным состоянием: список броней и "сейчас"
// приходят снаружи, общий стейт не мутируется, результат пересчитывается
// на каждый запрос.
type Generator struct {
	openTime     types.TimeString
	closeTime    types.TimeString
	slotDuration int // minutes
}

// NewGenerator создает генератор слотов для заданных часов работы
func NewGenerator(openTime, closeTime types.TimeString, slotDurationMinutes int) (*Generator, error) {
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: invalid open time: %w", err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: invalid close time: %w", err)
	}
	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("scheduling: open time %s must be before close time %s", openTime, closeTime)
	}
	if slotDurationMinutes <= 0 {
		return nil, fmt.Errorf("scheduling: slot duration must be positive, got %d", slotDurationMinutes)
	}

	return &Generator{
		openTime:     openTime,
		closeTime:    closeTime,
		slotDuration: slotDurationMinutes,
	}, nil
}

// OpenTime возвращает время открытия
func (g *Generator) OpenTime() types.TimeString { return g.openTime }

// CloseTime возвращает время закрытия
func (g *Generator) CloseTime() types.TimeString { return g.closeTime }

// SlotDuration возвращает ширину слота в минутах
func (g *Generator) SlotDuration() int { return g.slotDuration }

// Generate возвращает упорядоченную конечную последовательность слотов дня
// для рабочего места.
//
// Слот недоступен, если:
// - дата в прошлом (вся сетка недоступна);
// - рабочее место не в статусе available (вся сетка недоступна);
// - слот пересекается с активной (pending/confirmed) бронью — тогда
//   проставляется метка занявшего пользователя.
func (g *Generator) Generate(
	workstation *domain.Workstation,
	date time.Time,
	reservations []*domain.Reservation,
	now time.Time,
) ([]domain.TimeSlot, error) {
	// Шаг 1: генерируем все слоты от открытия до закрытия с фиксированным шагом
	grid := make([]domain.TimeSlot, 0)
	current := g.openTime

	for current.IsBefore(g.closeTime) {
		slotEnd, err := current.AddMinutes(g.slotDuration)
		if err != nil {
			return nil, fmt.Errorf("scheduling: build slot grid: %w", err)
		}
		if slotEnd.IsAfter(g.closeTime) {
			break
		}

		grid = append(grid, domain.TimeSlot{
			StartTime: current,
			EndTime:   slotEnd,
			Available: true,
		})
		current = slotEnd
	}

	// Шаг 2: прошедшая дата или нерабочее место — вся сетка недоступна
	if isDateInPast(date, now) || !workstation.IsBookable() {
		for i := range grid {
			grid[i].Available = false
		}
		return grid, nil
	}

	// Шаг 3: помечаем слоты, пересекающиеся с активными бронями
	for i := range grid {
		if blocking := FindConflict(grid[i].StartTime, grid[i].EndTime, reservations, nil); blocking != nil {
			grid[i].Available = false
			if blocking.UserName != "" {
				grid[i].OccupantName = ptr.Ptr(blocking.UserName)
			}
		}
	}

	// Шаг 4: на сегодняшнюю дату прошедшие слоты недоступны
	if isSameDay(date, now) {
		currentTime := types.NewTimeString(now)
		for i := range grid {
			if !grid[i].StartTime.IsAfter(currentTime) {
				grid[i].Available = false
			}
		}
	}

	return grid, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
