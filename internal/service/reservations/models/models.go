package models

import (
	"errors"
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	"github.com/eduhub/WSB-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelRequest запрос на обычную отмену бронирования
type CancelRequest struct {
	ActorID int64 `json:"actorId"`
}

// CancelWithReasonRequest запрос на привилегированную отмену с причиной
type CancelWithReasonRequest struct {
	ActorID int64  `json:"actorId"`
	Reason  string `json:"reason"`
}

// SetStatusRequest запрос на перевод брони в новый статус
type SetStatusRequest struct {
	ActorID int64  `json:"actorId"`
	Status  string `json:"status"`
}

// UpdateReservationRequest запрос на редактирование интервала брони.
// Статус при редактировании не меняется.
type UpdateReservationRequest struct {
	ActorID   int64            `json:"actorId"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Notes     *string          `json:"notes,omitempty"`
}

// GetUserReservationsRequest запрос на получение истории броней пользователя
type GetUserReservationsRequest struct {
	UserID     int64   `json:"userId"`
	ActorID    int64   `json:"actorId"`
	Status     *string `json:"status,omitempty"`     // Фильтр по статусу (опционально)
	ActiveOnly bool    `json:"activeOnly,omitempty"` // Только pending/confirmed
}

// GetWorkstationDayRequest запрос на получение броней рабочего места на дату
type GetWorkstationDayRequest struct {
	WorkstationID   int64     `json:"workstationId"`
	ActorID         int64     `json:"actorId"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отмененные/отклоненные
}

// Response модели

// ReservationResponse ответ с данными бронирования.
// Status отдается эффективный: подтвержденная бронь с истекшим интервалом
// читается как completed даже до фиксации перехода в БД.
type ReservationResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	WorkstationID   int64  `json:"workstationId"`
	ReservationDate string `json:"reservationDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "10:00"
	EndTime         string `json:"endTime"`         // "12:00"
	Status          string `json:"status"`

	// Денормализованные данные для истории
	UserName string `json:"userName"`
	UserRole string `json:"userRole"`

	Notes *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *int64  `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		WorkstationID:      r.WorkstationID,
		ReservationDate:    r.ReservationDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.EffectiveStatus(now)),
		UserName:           r.UserName,
		UserRole:           string(r.UserRole),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CancelledBy:        r.CancelledBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, reservation := range reservations {
		if r := FromDomainReservation(reservation, now); r != nil {
			resp.Reservations = append(resp.Reservations, *r)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s, ok := domain.ParseReservationStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
