package ports

import (
	"context"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// MarketClient lee items y órdenes de warframe.market.
// Ambos métodos devuelven *domain.FetchError si falla el transporte,
// la API responde con status no 2xx o el JSON no se puede decodificar.
type MarketClient interface {
	// ListItems devuelve todos los items comerciables.
	ListItems(ctx context.Context) ([]domain.Item, error)

	// ListOrders devuelve las órdenes activas del item con el slug dado,
	// en el orden en que las devuelve la API. Las órdenes no llevan Item.
	ListOrders(ctx context.Context, itemSlug string) ([]domain.Order, error)
}
