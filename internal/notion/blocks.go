package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

// Paragraph builds a plain paragraph block holding a single text run.
// An empty text yields a paragraph with no runs, which Notion renders as
// a blank line.
func Paragraph(text string) notionapi.Block {
	paragraph := notionapi.Paragraph{RichText: []notionapi.RichText{}}
	if text != "" {
		paragraph.RichText = []notionapi.RichText{textRun(text)}
	}
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: paragraph,
	}
}

// SyncToggle builds the collapsible container that owns the synced region
// on pages created by this tool: a "Synced Description" toggle tagged with
// a gray sentinel run, holding the marker paragraph as its first child.
func SyncToggle() notionapi.Block {
	return &notionapi.ToggleBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeToggle,
		},
		Toggle: notionapi.Toggle{
			RichText: []notionapi.RichText{
				textRun("Synced Description"),
				grayTextRun(SyncToggleMarker),
			},
			Children: []notionapi.Block{Paragraph(SyncChildMarker)},
		},
	}
}

// FirstText returns the text of a block's first rich-text run, or "" for
// blocks without text content. Only paragraph and toggle blocks carry text
// this tool cares about.
func FirstText(block notionapi.Block) string {
	switch b := block.(type) {
	case *notionapi.ParagraphBlock:
		return firstRunText(b.Paragraph.RichText)
	case *notionapi.ToggleBlock:
		return firstRunText(b.Toggle.RichText)
	default:
		return ""
	}
}

// FindMarker scans blocks for the marker paragraph: a paragraph whose first
// rich-text run contains the SyncChildMarker sentinel. Returns the marker's
// block ID and index.
func FindMarker(blocks []notionapi.Block) (notionapi.BlockID, int, bool) {
	for i, block := range blocks {
		paragraph, ok := block.(*notionapi.ParagraphBlock)
		if !ok {
			continue
		}
		if strings.Contains(firstRunText(paragraph.Paragraph.RichText), SyncChildMarker) {
			return paragraph.ID, i, true
		}
	}
	return "", 0, false
}

// FindSyncToggle scans blocks for the synced-description container: a toggle
// with any rich-text run containing the SyncToggleMarker sentinel.
func FindSyncToggle(blocks []notionapi.Block) (notionapi.BlockID, bool) {
	for _, block := range blocks {
		toggle, ok := block.(*notionapi.ToggleBlock)
		if !ok {
			continue
		}
		for _, run := range toggle.Toggle.RichText {
			if strings.Contains(runText(run), SyncToggleMarker) {
				return toggle.ID, true
			}
		}
	}
	return "", false
}

// RichTextValue extracts the first run's text of a rich_text page property.
func RichTextValue(page *notionapi.Page, name string) string {
	prop, ok := page.Properties[name]
	if !ok {
		return ""
	}
	richText, ok := prop.(*notionapi.RichTextProperty)
	if !ok {
		return ""
	}
	return firstRunText(richText.RichText)
}

// TitleValue extracts the first run's text of a page's title property.
func TitleValue(page *notionapi.Page, name string) string {
	prop, ok := page.Properties[name]
	if !ok {
		return ""
	}
	title, ok := prop.(*notionapi.TitleProperty)
	if !ok {
		return ""
	}
	return firstRunText(title.Title)
}

func firstRunText(runs []notionapi.RichText) string {
	if len(runs) == 0 {
		return ""
	}
	return runText(runs[0])
}

// runText prefers the editable text content and falls back to the
// API-provided plain text rendering.
func runText(run notionapi.RichText) string {
	if run.Text != nil {
		return run.Text.Content
	}
	return run.PlainText
}

func textRun(text string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: text},
	}
}

func grayTextRun(text string) notionapi.RichText {
	run := textRun(text)
	run.Annotations = &notionapi.Annotations{Color: notionapi.ColorGray}
	return run
}
