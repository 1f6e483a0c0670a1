package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Database property names of the assignment database.
const (
	PropTitle       = "Assignment Title"
	PropClass       = "Class"
	PropStartTime   = "Start Time"
	PropEndTime     = "End Time"
	PropEventID     = "Event ID"
	PropDescription = "Description"
)

// Sentinels delimiting the synced region of a page body. SyncToggleMarker
// tags the collapsible container created on new pages; SyncChildMarker tags
// the paragraph after which synced description lines live.
const (
	SyncToggleMarker = "[SYNCED DESCRIPTION]"
	SyncChildMarker  = "[SYNCED CONTENT]"
)

// PageStore is the capability the syncer needs from the record store.
// It is implemented by Client against the real Notion API and by fakes
// in tests.
type PageStore interface {
	// QueryByEventID returns the first page whose Event ID property equals
	// eventID exactly, or nil if there is none.
	QueryByEventID(ctx context.Context, eventID string) (*notionapi.Page, error)
	// QueryByTitle returns the first page whose Assignment Title property
	// equals title exactly, or nil if there is none.
	QueryByTitle(ctx context.Context, title string) (*notionapi.Page, error)
	// CreatePage creates a page in the assignment database with the given
	// properties and body blocks.
	CreatePage(ctx context.Context, properties notionapi.Properties, children []notionapi.Block) (*notionapi.Page, error)
	// UpdatePage overwrites the given properties of an existing page.
	UpdatePage(ctx context.Context, pageID notionapi.PageID, properties notionapi.Properties) error
	// ListChildren returns all child blocks of a page or block, following
	// pagination cursors.
	ListChildren(ctx context.Context, blockID notionapi.BlockID) ([]notionapi.Block, error)
	// AppendChildren appends blocks after the existing children of a page
	// or block and returns the created blocks.
	AppendChildren(ctx context.Context, blockID notionapi.BlockID, children []notionapi.Block) ([]notionapi.Block, error)
	// DeleteBlock removes a single block.
	DeleteBlock(ctx context.Context, blockID notionapi.BlockID) error
}
