package response

import (
	"time"

	"scenario-booking/internal/usecase"
)

type CalendarResponse struct {
	Days []CalendarDayResponse `json:"days"`
}

type CalendarDayResponse struct {
	Date  string                 `json:"date"`
	Past  bool                   `json:"past"`
	Slots []CalendarSlotResponse `json:"slots"`
}

type CalendarSlotResponse struct {
	Start        time.Time              `json:"start"`
	End          time.Time              `json:"end"`
	Status       string                 `json:"status"`
	Reservations []*ReservationResponse `json:"reservations,omitempty"`
}

func FromCalendar(days []usecase.CalendarDay) *CalendarResponse {
	out := &CalendarResponse{Days: make([]CalendarDayResponse, 0, len(days))}
	for _, day := range days {
		dayRes := CalendarDayResponse{
			Date:  day.Date.Format("2006-01-02"),
			Past:  day.Past,
			Slots: make([]CalendarSlotResponse, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			slotRes := CalendarSlotResponse{
				Start:  slot.Start,
				End:    slot.End,
				Status: string(slot.Status),
			}
			for _, res := range slot.Reservations {
				slotRes.Reservations = append(slotRes.Reservations, FromReservation(res))
			}
			dayRes.Slots = append(dayRes.Slots, slotRes)
		}
		out.Days = append(out.Days, dayRes)
	}
	return out
}
