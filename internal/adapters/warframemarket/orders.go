package warframemarket

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// ListOrders devuelve las órdenes activas de un item (GET /items/{slug}/orders).
// Las órdenes salen en el orden de la API y sin Item asignado.
func (c *Client) ListOrders(ctx context.Context, itemSlug string) ([]domain.Order, error) {
	if itemSlug == "" {
		return nil, &domain.FetchError{Op: "list_orders", Err: errors.New("empty item slug")}
	}

	path := itemsPath + "/" + url.PathEscape(itemSlug) + "/orders"
	p, err := fetchPayload[ordersPayload](ctx, c, "list_orders", itemSlug, path)
	if err != nil {
		return nil, err
	}

	orders := mapOrders(p.Orders)
	slog.Debug("fetched orders", "item", itemSlug, "count", len(orders))
	return orders, nil
}
