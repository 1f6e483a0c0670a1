package notion

import (
	"time"

	"github.com/jomei/notionapi"
)

// NewTitle builds a title property with a single text run.
func NewTitle(text string) notionapi.Property {
	return &notionapi.TitleProperty{
		Type:  notionapi.PropertyTypeTitle,
		Title: []notionapi.RichText{textRun(text)},
	}
}

// NewRichText builds a rich_text property with a single text run. An empty
// text yields a property with no runs, which reads back as "".
func NewRichText(text string) notionapi.Property {
	prop := &notionapi.RichTextProperty{
		Type:     notionapi.PropertyTypeRichText,
		RichText: []notionapi.RichText{},
	}
	if text != "" {
		prop.RichText = []notionapi.RichText{textRun(text)}
	}
	return prop
}

// NewSelect builds a select property for the given option name.
func NewSelect(name string) notionapi.Property {
	return &notionapi.SelectProperty{
		Type:   notionapi.PropertyTypeSelect,
		Select: notionapi.Option{Name: name},
	}
}

// NewDate builds a date property starting at t. A zero t yields an empty
// date property, clearing any stored value.
func NewDate(t time.Time) notionapi.Property {
	prop := &notionapi.DateProperty{Type: notionapi.PropertyTypeDate}
	if !t.IsZero() {
		start := notionapi.Date(t)
		prop.Date = &notionapi.DateObject{Start: &start}
	}
	return prop
}
