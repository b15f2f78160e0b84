package policy

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eduhub/WSB-BookingService/internal/domain"
)

// CancelPath путь отмены, определяет фиксируется ли причина
type CancelPath int

const (
	// PathPlain обычная отмена, причина не сохраняется
	PathPlain CancelPath = iota
	// PathWithReason привилегированная отмена с обязательной причиной,
	// проставляются cancelled_by / cancelled_at / cancellation_reason
	PathWithReason
)

// CancellationPolicy решает, может ли актор отменить бронь и каким путем.
// Правила применяются по порядку:
//  1. терминальную бронь отменить нельзя;
//  2. роли с CanCancelAnyWithReason отменяют любую бронь в любой момент,
//     но обязаны указать причину (длина проверяется отдельно,
//     через ValidateReason — это валидация, а не запрет политики);
//  3. студент отменяет только свою бронь и только вне окна блокировки
//     перед началом;
//  4. остальные акторы (владелец брони, модераторы центра) используют
//     обычный путь без причины.
type CancellationPolicy struct {
	rules Rules
}

// NewCancellationPolicy создает политику отмены
func NewCancellationPolicy(rules Rules) *CancellationPolicy {
	return &CancellationPolicy{rules: rules}
}

// CanCancel проверяет отмену и возвращает путь отмены.
// Ошибка ErrCancellationLocked несет размер окна блокировки.
func (p *CancellationPolicy) CanCancel(
	reservation *domain.Reservation,
	actorID int64,
	actorRole domain.Role,
	now time.Time,
) (CancelPath, error) {
	// Правило 1: терминальные статусы
	if reservation.IsTerminal() {
		return 0, fmt.Errorf("%w: status=%s", ErrAlreadyTerminal, reservation.Status)
	}

	actorPolicy := actorRole.Policy()

	// Правило 2: привилегированная отмена с причиной
	if actorPolicy.CanCancelAnyWithReason {
		return PathWithReason, nil
	}

	// Дальше разрешена отмена только своей брони либо модератором
	if reservation.UserID != actorID && !actorPolicy.CanModerate {
		return 0, ErrNotOwner
	}

	// Правило 3: окно блокировки для студента, отменяющего свою бронь
	if actorPolicy.CancellationLocked && reservation.UserID == actorID {
		startsAt, err := reservation.StartsAt()
		if err != nil {
			return 0, fmt.Errorf("%w: malformed reservation interval", ErrCancellationLocked)
		}
		lock := time.Duration(p.rules.CancellationLockMinutes) * time.Minute
		if startsAt.Sub(now) < lock {
			return 0, fmt.Errorf("%w: reservations cannot be cancelled within %d minutes of start",
				ErrCancellationLocked, p.rules.CancellationLockMinutes)
		}
	}

	// Правило 4: обычный путь
	return PathPlain, nil
}

// ValidateReason проверяет причину привилегированной отмены.
// Длина считается в символах по исходной строке без обрезки,
// причина сохраняется дословно.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrReasonLength)
	}
	length := utf8.RuneCountInString(reason)
	if length < domain.MinCancellationReasonLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrReasonLength, domain.MinCancellationReasonLength)
	}
	if length > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: maximum length is %d characters", ErrReasonLength, domain.MaxCancellationReasonLength)
	}
	return nil
}
