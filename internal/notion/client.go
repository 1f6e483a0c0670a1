package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// Client is a thin wrapper around the Notion API scoped to a single
// assignment database. It implements PageStore.
type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewClient creates a Client authenticated with an integration token.
func NewClient(token, databaseID string) *Client {
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// QueryByEventID returns the first page whose Event ID property equals
// eventID exactly, or nil if none matches.
func (c *Client) QueryByEventID(ctx context.Context, eventID string) (*notionapi.Page, error) {
	resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: PropEventID,
			RichText: &notionapi.TextFilterCondition{Equals: eventID},
		},
		PageSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("database query on %q failed: %w", PropEventID, err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// QueryByTitle returns the first page whose title property equals title
// exactly, or nil if none matches. The SDK's property filters cannot
// express a condition on a title property, so this pages through the
// database and compares titles client-side.
func (c *Client) QueryByTitle(ctx context.Context, title string) (*notionapi.Page, error) {
	var cursor notionapi.Cursor

	for {
		resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return nil, fmt.Errorf("database query on %q failed: %w", PropTitle, err)
		}
		for i := range resp.Results {
			if TitleValue(&resp.Results[i], PropTitle) == title {
				return &resp.Results[i], nil
			}
		}
		if !resp.HasMore {
			return nil, nil
		}
		cursor = resp.NextCursor
	}
}

// CreatePage creates a page in the assignment database.
func (c *Client) CreatePage(ctx context.Context, properties notionapi.Properties, children []notionapi.Block) (*notionapi.Page, error) {
	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: properties,
		Children:   children,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// UpdatePage overwrites the given properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID notionapi.PageID, properties notionapi.Properties) error {
	if _, err := c.api.Page.Update(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: properties,
	}); err != nil {
		return fmt.Errorf("failed to update page %s: %w", pageID, err)
	}
	return nil
}

// ListChildren returns all child blocks of a page or block, following
// pagination cursors until the listing is exhausted.
func (c *Client) ListChildren(ctx context.Context, blockID notionapi.BlockID) ([]notionapi.Block, error) {
	var blocks []notionapi.Block
	var cursor notionapi.Cursor

	for {
		resp, err := c.api.Block.GetChildren(ctx, blockID, &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list children of %s: %w", blockID, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore {
			return blocks, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// AppendChildren appends blocks after the existing children of a page or
// block and returns the created blocks.
func (c *Client) AppendChildren(ctx context.Context, blockID notionapi.BlockID, children []notionapi.Block) ([]notionapi.Block, error) {
	resp, err := c.api.Block.AppendChildren(ctx, blockID, &notionapi.AppendBlockChildrenRequest{
		Children: children,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append children to %s: %w", blockID, err)
	}
	return resp.Results, nil
}

// DeleteBlock removes a single block.
func (c *Client) DeleteBlock(ctx context.Context, blockID notionapi.BlockID) error {
	if _, err := c.api.Block.Delete(ctx, blockID); err != nil {
		return fmt.Errorf("failed to delete block %s: %w", blockID, err)
	}
	return nil
}
