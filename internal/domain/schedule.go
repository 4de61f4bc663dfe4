package domain

import (
	"errors"
	"time"
)

// Slot is a bookable window derived from the operating-hours template. It is
// never persisted; ID is the canonical start instant.
type Slot struct {
	ID    string
	Start time.Time
	End   time.Time
}

func NewSlot(start time.Time, duration time.Duration) Slot {
	start = start.UTC()
	return Slot{
		ID:    CanonicalInstant(start),
		Start: start,
		End:   start.Add(duration),
	}
}

// Schedule is the daily operating-hours template. Open and Close are wall
// clock offsets from local midnight in Location.
type Schedule struct {
	Location     *time.Location
	Open         time.Duration
	Close        time.Duration
	SlotDuration time.Duration
}

func DefaultSchedule() Schedule {
	return Schedule{
		Location:     time.UTC,
		Open:         9 * time.Hour,
		Close:        17 * time.Hour,
		SlotDuration: 30 * time.Minute,
	}
}

func (s Schedule) Validate() error {
	if s.SlotDuration <= 0 {
		return errors.New("slot duration must be positive")
	}
	if s.Open < 0 || s.Close > 24*time.Hour {
		return errors.New("operating hours must fall within a day")
	}
	if s.Close <= s.Open {
		return errors.New("close must be after open")
	}
	if s.Close-s.Open < s.SlotDuration {
		return errors.New("operating hours shorter than one slot")
	}
	return nil
}

func (s Schedule) Zone() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// SlotsPerDay is the number of grid slots a single day yields.
func (s Schedule) SlotsPerDay() int {
	if s.Validate() != nil {
		return 0
	}
	return int((s.Close - s.Open) / s.SlotDuration)
}

// GenerateSlots returns the full slot grid for every calendar day from
// rangeStart's day through rangeEnd's day, inclusive, in chronological order.
// An inverted range or an invalid template yields no slots.
func (s Schedule) GenerateSlots(rangeStart, rangeEnd time.Time) []Slot {
	perDay := s.SlotsPerDay()
	if perDay == 0 {
		return nil
	}

	loc := s.Zone()
	first := StartOfDay(rangeStart.In(loc))
	last := StartOfDay(rangeEnd.In(loc))
	days := DaysBetween(first, last)
	if days == 0 {
		return nil
	}

	out := make([]Slot, 0, days*perDay)
	for i := 0; i < days; i++ {
		y, m, d := first.Date()
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		dayOpen, dayClose := s.dayBounds(day)
		for start := dayOpen; !start.Add(s.SlotDuration).After(dayClose); start = start.Add(s.SlotDuration) {
			out = append(out, NewSlot(start, s.SlotDuration))
		}
	}
	return out
}

// Aligned reports whether t is the start of a grid slot inside operating
// hours.
func (s Schedule) Aligned(t time.Time) bool {
	if s.SlotsPerDay() == 0 {
		return false
	}
	local := t.In(s.Zone())
	dayOpen, dayClose := s.dayBounds(StartOfDay(local))
	if local.Before(dayOpen) || local.Add(s.SlotDuration).After(dayClose) {
		return false
	}
	return local.Sub(dayOpen)%s.SlotDuration == 0
}

func (s Schedule) dayBounds(day time.Time) (time.Time, time.Time) {
	return wallClock(day, s.Open), wallClock(day, s.Close)
}

func wallClock(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	h := int(offset / time.Hour)
	mins := int((offset % time.Hour) / time.Minute)
	sec := int((offset % time.Minute) / time.Second)
	return time.Date(y, m, d, h, mins, sec, 0, day.Location())
}
