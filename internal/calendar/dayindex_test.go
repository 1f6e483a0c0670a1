package calendar

import (
	"testing"
	"time"
)

func TestGroupByDay_Partition(t *testing.T) {
	events := []Event{
		{UID: "1", Title: "Morning", Start: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)},
		{UID: "2", Title: "Afternoon", Start: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)},
		{UID: "3", Title: "Next day", Start: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)},
	}

	byDay := GroupByDay(events)

	if len(byDay) != 2 {
		t.Fatalf("Expected 2 day buckets, got %d", len(byDay))
	}

	jan15 := DayKey{Year: 2024, Month: time.January, Day: 15}
	jan16 := DayKey{Year: 2024, Month: time.January, Day: 16}

	if len(byDay[jan15]) != 2 {
		t.Errorf("Expected 2 events on Jan 15, got %d", len(byDay[jan15]))
	}

	if len(byDay[jan16]) != 1 {
		t.Errorf("Expected 1 event on Jan 16, got %d", len(byDay[jan16]))
	}

	// Every event appears in exactly one bucket
	total := 0
	for _, bucket := range byDay {
		total += len(bucket)
	}
	if total != len(events) {
		t.Errorf("Expected %d events across all buckets, got %d", len(events), total)
	}
}

func TestGroupByDay_PreservesOrder(t *testing.T) {
	events := []Event{
		{UID: "1", Title: "First", Start: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)},
		{UID: "2", Title: "Second", Start: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)},
		{UID: "3", Title: "Third", Start: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)},
	}

	byDay := GroupByDay(events)
	bucket := byDay[DayKey{Year: 2024, Month: time.January, Day: 15}]

	if len(bucket) != 3 {
		t.Fatalf("Expected 3 events in the bucket, got %d", len(bucket))
	}

	// Bucket order matches input order, not time order
	for i, want := range []string{"First", "Second", "Third"} {
		if bucket[i].Title != want {
			t.Errorf("Expected event %d to be '%s', got '%s'", i, want, bucket[i].Title)
		}
	}
}

func TestGroupByDay_Empty(t *testing.T) {
	byDay := GroupByDay(nil)
	if len(byDay) != 0 {
		t.Errorf("Expected no buckets for empty input, got %d", len(byDay))
	}
}
