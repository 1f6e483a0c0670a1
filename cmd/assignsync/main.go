package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"assignsync/internal/calendar"
	"assignsync/internal/config"
	"assignsync/internal/notion"
	"assignsync/internal/sync"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func printHelp() {
	fmt.Fprintf(os.Stderr, `Assignment Sync Tool

Synchronizes assignment events from two ICS calendar feeds into a Notion
database, one page per event. Calendar A supplies authoritative start and
end times; Calendar B supplies titles, descriptions and event IDs. Events
are matched by day and title, and each matched event is created or updated
in place so that repeated runs converge.

USAGE:
    %s [OPTIONS]

OPTIONS:
    -h, --help                 Show this help message and exit
    -v, --verbose              Enable verbose output (show DEBUG logs)
    --config FILE              Path to JSON config file (optional)
    --calendar-a-url URL       Authoritative calendar feed URL
                               (overrides config file and CALENDAR_A_URL env var)
    --calendar-b-url URL       Assignment calendar feed URL
                               (overrides config file and CALENDAR_B_URL env var)
    --notion-token TOKEN       Notion integration token
                               (overrides config file and NOTION_TOKEN env var)
    --notion-database-id ID    Target Notion database ID
                               (overrides config file and NOTION_DATABASE_ID env var)

CONFIGURATION PRECEDENCE (highest to lowest):
    1. Command-line flags
    2. Environment variables (a .env file in the working directory is loaded if present)
    3. Config file (--config)

ENVIRONMENT VARIABLES:
    CALENDAR_A_URL        Authoritative calendar feed URL (webcal:// accepted)
    CALENDAR_B_URL        Assignment calendar feed URL (webcal:// accepted)
    NOTION_TOKEN          Notion integration token
    NOTION_DATABASE_ID    Target Notion database ID

DESCRIPTION:
    Each run fetches both feeds, groups events by day, and pairs each
    Calendar B event with the first same-day Calendar A event whose title
    is contained in the Calendar B title (case-insensitive). Matched events
    are upserted into the Notion database: structured fields are rewritten,
    and the full description is kept in a marked "Synced Description"
    region of the page body without touching anything outside it.

    A failed feed fetch or missing configuration aborts the run; failures
    scoped to a single event are logged and skipped.

EXAMPLES:
    # Run with environment variables (or a .env file)
    %s

    # Run with a config file
    %s --config /path/to/config.json

    # Override a single value
    %s --config /path/to/config.json --calendar-b-url "webcal://example.edu/assignments.ics"

`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func main() {
	helpFlag := flag.Bool("help", false, "Show help message")
	helpFlagShort := flag.Bool("h", false, "Show help message (shorthand)")
	verboseFlag := flag.Bool("verbose", false, "Enable verbose output")
	verboseFlagShort := flag.Bool("v", false, "Enable verbose output (shorthand)")
	configFile := flag.String("config", "", "Path to JSON config file (optional)")
	calendarAURL := flag.String("calendar-a-url", "", "Authoritative calendar feed URL")
	calendarBURL := flag.String("calendar-b-url", "", "Assignment calendar feed URL")
	notionToken := flag.String("notion-token", "", "Notion integration token")
	notionDatabaseID := flag.String("notion-database-id", "", "Target Notion database ID")
	flag.Parse()

	if *helpFlag || *helpFlagShort {
		printHelp()
		os.Exit(0)
	}

	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	level := slog.LevelInfo
	if *verboseFlag || *verboseFlagShort {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC1123Z,
		}),
	))

	cfg, err := config.LoadConfig(*configFile, *calendarAURL, *calendarBURL, *notionToken, *notionDatabaseID)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	primary := calendar.NewFeedSource("calendar A", cfg.CalendarAURL)
	secondary := calendar.NewFeedSource("calendar B", cfg.CalendarBURL)
	store := notion.NewClient(cfg.NotionToken, cfg.NotionDatabaseID)

	syncer := sync.NewSyncer(primary, secondary, store)
	if err := syncer.Sync(ctx); err != nil {
		slog.Error("sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("sync completed successfully")
}
