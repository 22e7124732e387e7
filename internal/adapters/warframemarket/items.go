package warframemarket

import (
	"context"
	"log/slog"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

const itemsPath = "/items"

// ListItems devuelve todos los items comerciables (GET /items).
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	p, err := fetchPayload[itemsPayload](ctx, c, "list_items", "", itemsPath)
	if err != nil {
		return nil, err
	}

	items := mapItems(p.Items)
	slog.Debug("fetched items", "count", len(items))
	return items, nil
}
