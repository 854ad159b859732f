package utils

import (
	"fmt"
	"time"

	"github.com/serenamente/teletherapy-backend/models"
)

// AvailableSlot is one free hourly slot in a therapist's schedule.
type AvailableSlot struct {
	Datetime time.Time `json:"datetime"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
}

// AvailabilityHorizonDays is the rolling window over which slots are offered.
const AvailabilityHorizonDays = 7

// AvailableSlots enumerates the free hourly slots for a therapist from now's
// date through six days ahead. A day contributes slots only if its weekday is
// flagged available; slots run hourly from the configured start time up to,
// but excluding, the end time. booked holds the start instants (unix seconds)
// of sessions that still occupy their slot.
func AvailableSlots(t *models.Therapist, booked map[int64]bool, now time.Time) ([]AvailableSlot, error) {
	start, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", t.StartTime, err)
	}
	end, err := time.Parse("15:04", t.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", t.EndTime, err)
	}

	slots := []AvailableSlot{}
	for i := 0; i < AvailabilityHorizonDays; i++ {
		day := now.AddDate(0, 0, i)
		if !t.AvailableOn(day.Weekday()) {
			continue
		}
		cur := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, now.Location())
		for cur.Before(dayEnd) {
			if !booked[cur.Unix()] {
				slots = append(slots, AvailableSlot{
					Datetime: cur,
					Date:     cur.Format("2006-01-02"),
					Time:     cur.Format("15:04"),
				})
			}
			cur = cur.Add(time.Hour)
		}
	}
	return slots, nil
}
