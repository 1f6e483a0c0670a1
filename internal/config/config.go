package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the configuration for the assignment sync tool.
type Config struct {
	CalendarAURL     string `json:"calendar_a_url,omitempty"`     // Authoritative calendar feed (trusted start/end times)
	CalendarBURL     string `json:"calendar_b_url,omitempty"`     // Assignment calendar feed (titles, descriptions, IDs)
	NotionToken      string `json:"notion_token,omitempty"`       // Notion integration token
	NotionDatabaseID string `json:"notion_database_id,omitempty"` // Target Notion database
}

// LoadConfigFromFile loads configuration from a JSON file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadConfig loads configuration with the following precedence (highest to lowest):
// 1. Command-line flags
// 2. Environment variables
// 3. Config file
// Returns an error if any required value is missing.
func LoadConfig(configFile string, calendarAURLFlag, calendarBURLFlag, notionTokenFlag, notionDatabaseIDFlag string) (*Config, error) {
	var config Config

	// Step 1: Load from config file if provided
	if configFile != "" {
		fileConfig, err := LoadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		config = *fileConfig
	}

	// Step 2: Override with environment variables
	if calendarAURL := os.Getenv("CALENDAR_A_URL"); calendarAURL != "" {
		config.CalendarAURL = calendarAURL
	}
	if calendarBURL := os.Getenv("CALENDAR_B_URL"); calendarBURL != "" {
		config.CalendarBURL = calendarBURL
	}
	if notionToken := os.Getenv("NOTION_TOKEN"); notionToken != "" {
		config.NotionToken = notionToken
	}
	if notionDatabaseID := os.Getenv("NOTION_DATABASE_ID"); notionDatabaseID != "" {
		config.NotionDatabaseID = notionDatabaseID
	}

	// Step 3: Override with command-line flags (highest priority)
	if calendarAURLFlag != "" {
		config.CalendarAURL = calendarAURLFlag
	}
	if calendarBURLFlag != "" {
		config.CalendarBURL = calendarBURLFlag
	}
	if notionTokenFlag != "" {
		config.NotionToken = notionTokenFlag
	}
	if notionDatabaseIDFlag != "" {
		config.NotionDatabaseID = notionDatabaseIDFlag
	}

	// Step 4: Validate required fields
	if config.CalendarAURL == "" {
		return nil, fmt.Errorf("calendar_a_url must be provided via --calendar-a-url flag, CALENDAR_A_URL environment variable, or config file")
	}

	if config.CalendarBURL == "" {
		return nil, fmt.Errorf("calendar_b_url must be provided via --calendar-b-url flag, CALENDAR_B_URL environment variable, or config file")
	}

	if config.NotionToken == "" {
		return nil, fmt.Errorf("notion_token must be provided via --notion-token flag, NOTION_TOKEN environment variable, or config file")
	}

	if config.NotionDatabaseID == "" {
		return nil, fmt.Errorf("notion_database_id must be provided via --notion-database-id flag, NOTION_DATABASE_ID environment variable, or config file")
	}

	return &config, nil
}
