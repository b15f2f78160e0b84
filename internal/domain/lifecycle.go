package domain

// transitions таблица допустимых переходов статусов.
// Создание дает pending (или сразу confirmed при автоподтверждении),
// дальше статус меняется только по этой таблице.
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	// cancelled / rejected / completed терминальные
}

// CanTransition reports whether the status change from -> to is defined
// by the reservation lifecycle.
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionRequiresModerator reports whether the transition may only be
// triggered by a role with the CanModerate policy flag.
// Completion is passive (observed when now >= endTime), so persisting it
// is treated as a moderator maintenance action rather than a user one.
func TransitionRequiresModerator(from, to ReservationStatus) bool {
	switch {
	case from == StatusPending && to == StatusConfirmed:
		return true
	case from == StatusPending && to == StatusRejected:
		return true
	case from == StatusConfirmed && to == StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseReservationStatus validates and converts a string into a status
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusRejected, StatusCompleted:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}
