package policy

import (
	"fmt"
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
)

// CooldownPolicy ограничивает частоту бронирований студентов.
// Два независимых правила, обе проверки идут по всей истории пользователя,
// а не только по целевому рабочему месту:
//  1. одна активная бронь: для ролей с флагом SingleActiveLimited
//     pending/confirmed бронь с концом в будущем блокирует создание новой;
//  2. пауза после завершения: между концом последней брони и началом новой
//     должен пройти настроенный интервал.
//
// Роли с флагом CooldownExempt обе проверки пропускают.
type CooldownPolicy struct {
	rules Rules
}

// NewCooldownPolicy создает политику cooldown
func NewCooldownPolicy(rules Rules) *CooldownPolicy {
	return &CooldownPolicy{rules: rules}
}

// CanMakeReservation проверяет, может ли пользователь с ролью role создать
// бронь, начинающуюся в proposedStart. history — все брони пользователя.
func (p *CooldownPolicy) CanMakeReservation(
	role domain.Role,
	history []*domain.Reservation,
	proposedStart time.Time,
	now time.Time,
) error {
	actorPolicy := role.Policy()
	if actorPolicy.CooldownExempt {
		return nil
	}

	// Правило 1: не больше одной активной брони
	if actorPolicy.SingleActiveLimited {
		for _, r := range history {
			if r.IsActive() && r.EndsInFuture(now) {
				endsAt, err := r.EndsAt()
				if err != nil {
					return fmt.Errorf("%w: blocking reservation id=%d", ErrActiveReservationExists, r.ID)
				}
				return fmt.Errorf("%w: current reservation ends at %s",
					ErrActiveReservationExists, endsAt.Format("2006-01-02 15:04"))
			}
		}
	}

	// Правило 2: пауза после завершения последней брони.
	// Считаются брони, которые реально состоялись: confirmed с прошедшим
	// концом и completed. Отмененные и отклоненные паузу не запускают.
	var latestEnd time.Time
	for _, r := range history {
		if r.Status != domain.StatusConfirmed && r.Status != domain.StatusCompleted {
			continue
		}
		endsAt, err := r.EndsAt()
		if err != nil {
			continue
		}
		if endsAt.After(now) {
			continue
		}
		if endsAt.After(latestEnd) {
			latestEnd = endsAt
		}
	}

	if latestEnd.IsZero() {
		return nil
	}

	earliestAllowed := latestEnd.Add(time.Duration(p.rules.CooldownMinutes) * time.Minute)
	if proposedStart.Before(earliestAllowed) {
		return fmt.Errorf("%w: next reservation may start at %s",
			ErrCooldownActive, earliestAllowed.Format("2006-01-02 15:04"))
	}

	return nil
}
