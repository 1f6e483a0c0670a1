package calendar

import "time"

// DayKey is a calendar date with no time component, used to bucket events
// for same-day matching.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf returns the date bucket for an event, taken from the date
// component of its start time in whatever location the start carries.
func DayKeyOf(event Event) DayKey {
	year, month, day := event.Start.Date()
	return DayKey{Year: year, Month: month, Day: day}
}

// GroupByDay partitions events into per-day buckets keyed by the date of
// each event's start time. Order within a bucket preserves input order.
func GroupByDay(events []Event) map[DayKey][]Event {
	byDay := make(map[DayKey][]Event)
	for _, event := range events {
		key := DayKeyOf(event)
		byDay[key] = append(byDay[key], event)
	}
	return byDay
}
