package domain

// Default policy values. Every one of them can be overridden through the
// service configuration; the defaults match the platform-wide rules.
const (
	// DefaultSlotDurationMinutes ширина слота бронирования
	DefaultSlotDurationMinutes = 60

	// DefaultStudentMaxDurationHours максимальная длительность брони студента
	DefaultStudentMaxDurationHours = 2

	// DefaultMaxDurationHours максимальная длительность брони остальных ролей
	DefaultMaxDurationHours = 4

	// DefaultCooldownMinutes пауза после завершения брони студента
	DefaultCooldownMinutes = 60

	// DefaultCancellationLockMinutes окно перед началом, в котором студент
	// уже не может отменить бронь
	DefaultCancellationLockMinutes = 60

	// DefaultMinNoticeMinutes минимальный зазор между "сейчас" и началом брони,
	// компенсирует задержку отправки запроса
	DefaultMinNoticeMinutes = 2

	// DefaultOpenTime / DefaultCloseTime часы работы центра
	DefaultOpenTime  = "08:00"
	DefaultCloseTime = "20:00"
)

// Cancellation reason bounds for the privileged path
const (
	MinCancellationReasonLength = 10
	MaxCancellationReasonLength = 500
)

// MaxNotesLength ограничение на длину заметок к брони
const MaxNotesLength = 500

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, при которых бронь занимает слот
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusRejected,
	StatusCompleted,
}
