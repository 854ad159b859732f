package utils

import (
	"testing"
	"time"

	"github.com/serenamente/teletherapy-backend/models"
)

func weekdayTherapist() *models.Therapist {
	return &models.Therapist{
		MondayAvailable:    true,
		TuesdayAvailable:   true,
		WednesdayAvailable: true,
		ThursdayAvailable:  true,
		FridayAvailable:    true,
		StartTime:          "09:00",
		EndTime:            "18:00",
	}
}

// 2026-03-07 is a Saturday; the 7-day horizon covers Sat..Fri.
var saturday = time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)

func TestAvailableSlotsWeekdaySchedule(t *testing.T) {
	slots, err := AvailableSlots(weekdayTherapist(), nil, saturday)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}

	// Mon-Fri within the window, 9 hourly slots each (09:00..17:00).
	if len(slots) != 45 {
		t.Fatalf("got %d slots, want 45", len(slots))
	}

	perDay := map[string]int{}
	for _, slot := range slots {
		perDay[slot.Date]++

		day := slot.Datetime.Weekday()
		if day == time.Saturday || day == time.Sunday {
			t.Errorf("slot %s falls on unavailable weekday %s", slot.Datetime, day)
		}
		if slot.Time == "18:00" {
			t.Errorf("end time must be exclusive, got slot at %s", slot.Datetime)
		}
	}

	for date, n := range perDay {
		if n != 9 {
			t.Errorf("day %s has %d slots, want 9", date, n)
		}
	}

	first := slots[0]
	if first.Date != "2026-03-09" || first.Time != "09:00" {
		t.Errorf("first slot = %s %s, want 2026-03-09 09:00", first.Date, first.Time)
	}
}

func TestAvailableSlotsSkipsBooked(t *testing.T) {
	mondayAtTen := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	booked := map[int64]bool{mondayAtTen.Unix(): true}

	slots, err := AvailableSlots(weekdayTherapist(), booked, saturday)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}

	if len(slots) != 44 {
		t.Errorf("got %d slots, want 44", len(slots))
	}
	for _, slot := range slots {
		if slot.Datetime.Equal(mondayAtTen) {
			t.Errorf("booked slot %s must not be offered", slot.Datetime)
		}
	}
}

func TestAvailableSlotsHonorsWeekdayFlags(t *testing.T) {
	therapist := weekdayTherapist()
	therapist.WednesdayAvailable = false

	slots, err := AvailableSlots(therapist, nil, saturday)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}

	for _, slot := range slots {
		if slot.Datetime.Weekday() == time.Wednesday {
			t.Errorf("slot %s falls on disabled Wednesday", slot.Datetime)
		}
	}
	if len(slots) != 36 {
		t.Errorf("got %d slots, want 36", len(slots))
	}
}

func TestAvailableSlotsEmptyWindow(t *testing.T) {
	therapist := weekdayTherapist()
	therapist.StartTime = "09:00"
	therapist.EndTime = "09:00"

	slots, err := AvailableSlots(therapist, nil, saturday)
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0 for an empty window", len(slots))
	}
}

func TestAvailableSlotsInvalidWindow(t *testing.T) {
	therapist := weekdayTherapist()
	therapist.StartTime = "9am"

	if _, err := AvailableSlots(therapist, nil, saturday); err == nil {
		t.Error("expected error for malformed start time")
	}
}
