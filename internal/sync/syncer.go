package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"assignsync/internal/calendar"
	"assignsync/internal/notion"

	"github.com/jomei/notionapi"
)

// Placeholder stored in the Description property; the full description
// lives in the page body so the structured field stays bounded.
const descriptionPointer = "See page for details"

// Syncer drives one sync run: it matches events from the assignment feed
// against the authoritative feed and upserts one Notion page per matched
// event.
type Syncer struct {
	primary   calendar.Source // authoritative start/end times
	secondary calendar.Source // titles, descriptions, event IDs
	store     notion.PageStore
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(primary, secondary calendar.Source, store notion.PageStore) *Syncer {
	return &Syncer{
		primary:   primary,
		secondary: secondary,
		store:     store,
	}
}

// Sync performs one full synchronization run. A failure to fetch either
// feed is fatal (no partial sync); failures scoped to a single event are
// logged and skipped.
func (s *Syncer) Sync(ctx context.Context) error {
	slog.Info("fetching calendars")

	primaryEvents, err := s.primary.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", s.primary.Name(), err)
	}

	secondaryEvents, err := s.secondary.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", s.secondary.Name(), err)
	}

	primaryByDay := calendar.GroupByDay(primaryEvents)
	secondaryByDay := calendar.GroupByDay(secondaryEvents)

	slog.Info("syncing events",
		"primary", len(primaryEvents),
		"secondary", len(secondaryEvents))

	for _, day := range sortedDays(secondaryByDay) {
		candidates, ok := primaryByDay[day]
		if !ok {
			continue
		}

		for _, event := range secondaryByDay[day] {
			match, ok := calendar.FindMatch(event, candidates)
			if !ok {
				slog.Info("no match", "title", event.Title)
				continue
			}
			if err := s.upsertEvent(ctx, event, match); err != nil {
				slog.Warn("failed to sync event", "title", event.Title, "error", err)
			}
		}
	}

	return nil
}

// sortedDays returns the map's day keys in chronological order so runs
// process days deterministically.
func sortedDays(byDay map[calendar.DayKey][]calendar.Event) []calendar.DayKey {
	days := make([]calendar.DayKey, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := days[i], days[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Day < b.Day
	})
	return days
}

// upsertEvent creates or updates the page for one matched pair. The
// secondary event supplies title, description and event ID; the primary
// (accurate) event supplies start and end times.
func (s *Syncer) upsertEvent(ctx context.Context, event, accurate calendar.Event) error {
	title := event.Title
	if title == "" {
		title = "Untitled Event"
	}

	class := "Unknown"
	if before, _, found := strings.Cut(title, ":"); found {
		class = before
	}

	properties := notionapi.Properties{
		notion.PropTitle:       notion.NewTitle(title),
		notion.PropClass:       notion.NewSelect(class),
		notion.PropStartTime:   notion.NewDate(accurate.Start),
		notion.PropEndTime:     notion.NewDate(accurate.End),
		notion.PropEventID:     notion.NewRichText(event.UID),
		notion.PropDescription: notion.NewRichText(descriptionPointer),
	}

	if page := s.locatePage(ctx, event.UID, title); page != nil {
		slog.Info("updating", "title", title)
		if err := s.store.UpdatePage(ctx, notionapi.PageID(page.ID), properties); err != nil {
			return err
		}
		return s.reconcileBody(ctx, notionapi.BlockID(page.ID), event.Description)
	}

	slog.Info("creating", "title", title)
	page, err := s.store.CreatePage(ctx, properties, []notionapi.Block{notion.SyncToggle()})
	if err != nil {
		return err
	}
	return s.reconcileBody(ctx, notionapi.BlockID(page.ID), event.Description)
}

// locatePage finds the existing page for an event. Event ID lookup is the
// fast path; title lookup exists for pages that predate event ID tracking
// and opportunistically retrofits the ID onto them. Query failures are
// warnings: the lookup falls through to the next path or reports "not
// found" rather than aborting the run.
func (s *Syncer) locatePage(ctx context.Context, eventID, title string) *notionapi.Page {
	if eventID != "" {
		page, err := s.store.QueryByEventID(ctx, eventID)
		if err != nil {
			slog.Warn("event ID query failed", "event_id", eventID, "error", err)
		} else if page != nil {
			return page
		}
	}

	page, err := s.store.QueryByTitle(ctx, title)
	if err != nil {
		slog.Warn("title query failed", "title", title, "error", err)
		return nil
	}
	if page == nil {
		return nil
	}

	// Legacy page found by title: backfill the event ID so future runs
	// take the fast path.
	if eventID != "" && notion.RichTextValue(page, notion.PropEventID) == "" {
		retrofit := notionapi.Properties{
			notion.PropEventID: notion.NewRichText(eventID),
		}
		if err := s.store.UpdatePage(ctx, notionapi.PageID(page.ID), retrofit); err != nil {
			slog.Warn("failed to retrofit event ID", "title", title, "error", err)
		}
	}

	return page
}

// reconcileBody brings the synced region of a page body up to date with
// the event's full description. Pages created by this tool keep their
// synced content inside a collapsible container, which is reconciled by
// full replacement; pages from earlier revisions carry a bare marker
// paragraph in the page body and are reconciled append-only. Content
// before the marker, or outside the container, is never touched.
func (s *Syncer) reconcileBody(ctx context.Context, pageID notionapi.BlockID, fullDescription string) error {
	blocks, err := s.store.ListChildren(ctx, pageID)
	if err != nil {
		return err
	}

	if toggleID, ok := notion.FindSyncToggle(blocks); ok {
		return s.replaceSyncedContent(ctx, toggleID, fullDescription)
	}

	if _, index, ok := notion.FindMarker(blocks); ok {
		return s.appendNewLines(ctx, pageID, blocks[index+1:], fullDescription)
	}

	// No synced region yet: create the container and fill it.
	created, err := s.store.AppendChildren(ctx, pageID, []notionapi.Block{notion.SyncToggle()})
	if err != nil {
		return err
	}
	if len(created) == 0 {
		return fmt.Errorf("store returned no block for created synced container on page %s", pageID)
	}
	return s.replaceSyncedContent(ctx, created[0].GetID(), fullDescription)
}

// appendNewLines is the append-only reconciliation variant. Lines of the
// description that already appear after the marker are skipped; only
// previously-unseen non-empty lines are appended. No new lines means no
// mutation at all.
func (s *Syncer) appendNewLines(ctx context.Context, parentID notionapi.BlockID, afterMarker []notionapi.Block, fullDescription string) error {
	existing := make(map[string]struct{})
	for _, block := range afterMarker {
		if text := notion.FirstText(block); text != "" {
			existing[text] = struct{}{}
		}
	}

	var newBlocks []notionapi.Block
	for _, line := range strings.Split(fullDescription, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, seen := existing[line]; seen {
			continue
		}
		newBlocks = append(newBlocks, notion.Paragraph(line))
	}

	if len(newBlocks) == 0 {
		return nil
	}
	_, err := s.store.AppendChildren(ctx, parentID, newBlocks)
	return err
}

// replaceSyncedContent is the full-replace reconciliation variant, used
// inside the collapsible container. Everything after the marker is wiped
// and the current description is re-inserted line by line, blank lines
// becoming empty paragraphs so paragraph breaks survive.
func (s *Syncer) replaceSyncedContent(ctx context.Context, containerID notionapi.BlockID, fullDescription string) error {
	children, err := s.store.ListChildren(ctx, containerID)
	if err != nil {
		return err
	}

	_, index, ok := notion.FindMarker(children)
	if !ok {
		// Marker missing inside the container: recreate it. Anything
		// already in the container stays where it is.
		created, err := s.store.AppendChildren(ctx, containerID, []notionapi.Block{notion.Paragraph(notion.SyncChildMarker)})
		if err != nil {
			return err
		}
		if len(created) == 0 {
			return fmt.Errorf("store returned no block for created marker in container %s", containerID)
		}
		index = len(children)
		children = append(children, created[0])
	}

	for _, block := range children[index+1:] {
		if err := s.store.DeleteBlock(ctx, block.GetID()); err != nil {
			return err
		}
	}

	if fullDescription == "" {
		return nil
	}

	var blocks []notionapi.Block
	for _, line := range strings.Split(fullDescription, "\n") {
		blocks = append(blocks, notion.Paragraph(line))
	}
	_, err = s.store.AppendChildren(ctx, containerID, blocks)
	return err
}
