package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:uid-1\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240115T090000Z\r\n" +
	"DTEND:20240115T100000Z\r\n" +
	"SUMMARY:CS101: HW1\r\n" +
	"DESCRIPTION:Read ch.1\\nBring notes\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:uid-2\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240116T140000Z\r\n" +
	"SUMMARY:Lab2\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestFeedSource_Fetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(testFeed))
	}))
	defer server.Close()

	source := NewFeedSource("test feed", server.URL)
	events, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned an error: %v", err)
	}

	if gotUserAgent != feedUserAgent {
		t.Errorf("Expected User-Agent '%s', got '%s'", feedUserAgent, gotUserAgent)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.UID != "uid-1" {
		t.Errorf("Expected UID 'uid-1', got '%s'", first.UID)
	}
	if first.Title != "CS101: HW1" {
		t.Errorf("Expected title 'CS101: HW1', got '%s'", first.Title)
	}
	if !first.Start.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected start 2024-01-15T09:00:00Z, got %v", first.Start)
	}
	if !first.End.Equal(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected end 2024-01-15T10:00:00Z, got %v", first.End)
	}
	// Escaped \n in DESCRIPTION becomes a real newline
	if first.Description != "Read ch.1\nBring notes" {
		t.Errorf("Expected unescaped description, got %q", first.Description)
	}

	// Second event has no DTEND
	second := events[1]
	if second.UID != "uid-2" {
		t.Errorf("Expected UID 'uid-2', got '%s'", second.UID)
	}
	if !second.End.IsZero() {
		t.Errorf("Expected zero End for event without DTEND, got %v", second.End)
	}
}

func TestFeedSource_FetchNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := NewFeedSource("test feed", server.URL)
	_, err := source.Fetch(context.Background())
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a *FetchError, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", fetchErr.StatusCode)
	}
}

func TestNormalizeFeedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"webcal://example.edu/feed.ics", "https://example.edu/feed.ics"},
		{"webcals://example.edu/feed.ics", "https://example.edu/feed.ics"},
		{"https://example.edu/feed.ics", "https://example.edu/feed.ics"},
		{"http://example.edu/feed.ics", "http://example.edu/feed.ics"},
	}

	for _, tt := range tests {
		if got := NormalizeFeedURL(tt.in); got != tt.want {
			t.Errorf("NormalizeFeedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFeed_DurationSetsEnd(t *testing.T) {
	feed := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:uid-duration\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240115T090000Z\r\n" +
		"DURATION:PT1H30M\r\n" +
		"SUMMARY:Seminar\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed))
	}))
	defer server.Close()

	source := NewFeedSource("test feed", server.URL)
	events, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned an error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if !events[0].End.Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("Expected end 2024-01-15T10:30:00Z from DURATION, got %v", events[0].End)
	}
}

func TestParseFeed_SkipsEventWithoutStart(t *testing.T) {
	feed := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:no-start\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"SUMMARY:Broken\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:good\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240115T090000Z\r\n" +
		"SUMMARY:Fine\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed))
	}))
	defer server.Close()

	source := NewFeedSource("test feed", server.URL)
	events, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned an error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].UID != "good" {
		t.Errorf("Expected the event without DTSTART to be skipped, got '%s'", events[0].UID)
	}
}
