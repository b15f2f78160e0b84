package get_available_slots

import (
	"time"

	"github.com/eduhub/WSB-BookingService/internal/domain"
	getAvailableSlots "github.com/eduhub/WSB-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	WorkstationID int64           `json:"workstationId"`
	Date          string          `json:"date"`
	Slots         []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Label        string  `json:"label"`
	Available    bool    `json:"available"`
	OccupantName *string `json:"occupantName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:    slot.StartTime.String(),
			EndTime:      slot.EndTime.String(),
			Label:        slot.HourLabel(),
			Available:    slot.Available,
			OccupantName: slot.OccupantName,
		}
	}

	return &AvailableSlotsResponse{
		WorkstationID: resp.WorkstationID,
		Date:          resp.Date.Format(domain.DateFormat),
		Slots:         slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(workstationID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		WorkstationID: workstationID,
		Date:          date,
	}, nil
}
