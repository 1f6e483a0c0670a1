package calendar

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// Some feed servers reject requests with default Go client identifiers,
// so we present a browser-like User-Agent.
const feedUserAgent = "Mozilla/5.0 (compatible; assignsync)"

// FeedSource fetches and parses a single ICS calendar feed over HTTPS.
type FeedSource struct {
	name       string
	url        string
	httpClient *http.Client
}

// NewFeedSource creates a FeedSource for the given URL. A webcal:// or
// webcals:// scheme is normalized to https://.
func NewFeedSource(name, url string) *FeedSource {
	return &FeedSource{
		name: name,
		url:  NormalizeFeedURL(url),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NormalizeFeedURL rewrites the webcal scheme aliases to https.
func NormalizeFeedURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "webcals://"); ok {
		return "https://" + rest
	}
	if rest, ok := strings.CutPrefix(url, "webcal://"); ok {
		return "https://" + rest
	}
	return url
}

// Name returns the configured feed name, used for logging.
func (s *FeedSource) Name() string {
	return s.name
}

// Fetch retrieves the feed and parses it into events. Feed order is
// preserved. Events without a parsable start time are skipped with a
// warning rather than failing the whole feed.
func (s *FeedSource) Fetch(ctx context.Context) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	req.Header.Set("User-Agent", feedUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: s.url, StatusCode: resp.StatusCode}
	}

	return parseFeed(resp.Body, s.name, s.url)
}

// parseFeed decodes an ICS document into events. The stream may contain
// multiple VCALENDAR objects; all of them are read.
func parseFeed(r io.Reader, feedName, url string) ([]Event, error) {
	var events []Event

	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FetchError{URL: url, Err: err}
		}

		for _, icalEvent := range cal.Events() {
			event, ok := eventFromComponent(icalEvent)
			if !ok {
				slog.Warn("skipping event without a valid start time",
					"feed", feedName,
					"uid", propText(icalEvent.Props.Get(ical.PropUID)))
				continue
			}
			events = append(events, event)
		}
	}

	return events, nil
}

// eventFromComponent extracts the fields this tool cares about from a
// VEVENT: UID, SUMMARY, DTSTART, DTEND and DESCRIPTION. Everything else
// in the component is ignored.
func eventFromComponent(icalEvent ical.Event) (Event, bool) {
	start, err := icalEvent.DateTimeStart(time.Local)
	if err != nil || start.IsZero() {
		return Event{}, false
	}

	event := Event{
		UID:         propText(icalEvent.Props.Get(ical.PropUID)),
		Title:       propText(icalEvent.Props.Get(ical.PropSummary)),
		Start:       start,
		Description: propText(icalEvent.Props.Get(ical.PropDescription)),
	}

	// DTEND is optional; a zero End means "no end time". DateTimeEnd falls
	// back to DTSTART when the event has neither DTEND nor DURATION, so
	// check for the properties before trusting its result.
	if icalEvent.Props.Get(ical.PropDateTimeEnd) != nil || icalEvent.Props.Get(ical.PropDuration) != nil {
		if end, err := icalEvent.DateTimeEnd(time.Local); err == nil && !end.IsZero() {
			event.End = end
		}
	}

	return event, true
}

// propText returns the unescaped text value of a property, or "" if the
// property is absent.
func propText(prop *ical.Prop) string {
	if prop == nil {
		return ""
	}
	text, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return text
}
