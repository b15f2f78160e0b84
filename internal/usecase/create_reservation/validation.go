package create_reservation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/internal/scheduling"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.WorkstationID <= 0 {
		return fmt.Errorf("%w: workstationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date time.Time, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateStartNotice проверяет, что начало брони отстоит от "сейчас" минимум
// на minNoticeMinutes (зазор компенсирует задержку доставки запроса)
func validateStartNotice(startsAt time.Time, now time.Time, minNoticeMinutes int) error {
	minStart := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if startsAt.Before(minStart) {
		return fmt.Errorf("%w: reservation must start at least %d minutes from now",
			ErrTooLateToBook, minNoticeMinutes)
	}
	return nil
}

// validateSlotGrid проверяет, что интервал лежит в часах работы и начало
// совпадает с сеткой слотов генератора
func validateSlotGrid(start, end types.TimeString, generator *scheduling.Generator) error {
	if start.IsBefore(generator.OpenTime()) || end.IsAfter(generator.CloseTime()) {
		return fmt.Errorf("%w: operating hours are %s - %s",
			ErrOutsideOperatingHours, generator.OpenTime(), generator.CloseTime())
	}

	offset, err := start.SubMinutes(generator.OpenTime())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if offset%generator.SlotDuration() != 0 {
		return fmt.Errorf("%w: slots start every %d minutes from %s",
			ErrUnalignedSlot, generator.SlotDuration(), generator.OpenTime())
	}

	return nil
}
