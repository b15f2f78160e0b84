package policy

import "github.com/eduhub/WSB-BookingService/internal/domain"

// Rules числовые параметры политик. Значения приходят из конфигурации,
// дефолты совпадают с платформенными правилами.
type Rules struct {
	// StudentMaxDurationHours максимальная длительность брони студента
	StudentMaxDurationHours int
	// DefaultMaxDurationHours максимальная длительность брони остальных ролей
	DefaultMaxDurationHours int
	// CooldownMinutes пауза после завершения брони студента
	CooldownMinutes int
	// CancellationLockMinutes окно перед началом, в котором студент
	// не может отменить бронь
	CancellationLockMinutes int
}

// DefaultRules возвращает правила по умолчанию
func DefaultRules() Rules {
	return Rules{
		StudentMaxDurationHours: domain.DefaultStudentMaxDurationHours,
		DefaultMaxDurationHours: domain.DefaultMaxDurationHours,
		CooldownMinutes:         domain.DefaultCooldownMinutes,
		CancellationLockMinutes: domain.DefaultCancellationLockMinutes,
	}
}

// maxDurationHours вычисляет лимит длительности для роли.
// Базовое значение берется из таблицы ролевых политик; конфигурация
// переопределяет каждый из двух платформенных лимитов.
func (r Rules) maxDurationHours(role domain.Role) int {
	base := role.Policy().MaxDurationHours
	switch base {
	case domain.DefaultStudentMaxDurationHours:
		return r.StudentMaxDurationHours
	case domain.DefaultMaxDurationHours:
		return r.DefaultMaxDurationHours
	}
	return base
}
