package policy

import (
	"fmt"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// DurationPolicy ограничивает длительность брони в зависимости от роли
type DurationPolicy struct {
	rules Rules
}

// NewDurationPolicy создает политику длительности
func NewDurationPolicy(rules Rules) *DurationPolicy {
	return &DurationPolicy{rules: rules}
}

// MaxDurationHours возвращает максимальную длительность брони для роли
func (p *DurationPolicy) MaxDurationHours(role domain.Role) int {
	return p.rules.maxDurationHours(role)
}

// Validate проверяет интервал [start, end) на соответствие лимиту роли.
// Граница включительно: бронь ровно в максимум допустима.
// Ошибка ErrDurationExceeded несет разрешенный максимум, чтобы вызывающая
// сторона могла показать "доступно до N часов".
func (p *DurationPolicy) Validate(role domain.Role, start, end types.TimeString) error {
	minutes, err := end.SubMinutes(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	if minutes <= 0 {
		return ErrInvalidInterval
	}

	maxHours := p.rules.maxDurationHours(role)
	if minutes > maxHours*60 {
		return fmt.Errorf("%w: maximum allowed is %d hours", ErrDurationExceeded, maxHours)
	}

	return nil
}
