// Package buyer evalúa las órdenes de un item contra una Policy:
// filtra las órdenes raw, las enriquece con su item, las puntúa y las renderiza.
//
// El Buyer no guarda estado mutable, así que se puede usar desde varias
// goroutines a la vez. No loguea ni reintenta: los errores del MarketClient
// se devuelven tal cual.
package buyer

import (
	"context"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/ports"
)

// Buyer es el pipeline de evaluación de órdenes.
type Buyer struct {
	market ports.MarketClient
	policy Policy
}

// New crea un Buyer. Los campos nil de policy usan los defaults.
func New(market ports.MarketClient, policy Policy) *Buyer {
	return &Buyer{
		market: market,
		policy: policy.withDefaults(),
	}
}

// Policy devuelve la política efectiva (con defaults aplicados).
func (b *Buyer) Policy() Policy {
	return b.policy
}

// EvaluateItem obtiene las órdenes del item, descarta las que no pasan el Filter
// y enriquece las restantes con el item. Conserva el orden de la API.
// Si el MarketClient falla devuelve su error sin resultado parcial.
func (b *Buyer) EvaluateItem(ctx context.Context, item domain.Item) ([]domain.Order, error) {
	raw, err := b.market.ListOrders(ctx, item.URLName)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, o := range raw {
		// el filtro corre sobre la orden raw para no enriquecer descartes
		if !b.policy.Filter(o) {
			continue
		}
		orders = append(orders, o.WithItem(item))
	}
	return orders, nil
}

// RenderMessages devuelve un mensaje por orden, en el mismo orden.
func (b *Buyer) RenderMessages(orders []domain.Order) []string {
	messages := make([]string, 0, len(orders))
	for _, o := range orders {
		messages = append(messages, b.policy.Renderer(o, b.policy.Scorer))
	}
	return messages
}

// Score aplica el Scorer de la política a una orden enriquecida.
func (b *Buyer) Score(order domain.Order) int {
	return b.policy.Scorer(order)
}

// Evaluate combina EvaluateItem, Score y RenderMessages para un item.
func (b *Buyer) Evaluate(ctx context.Context, item domain.Item) ([]domain.Evaluation, error) {
	orders, err := b.EvaluateItem(ctx, item)
	if err != nil {
		return nil, err
	}

	messages := b.RenderMessages(orders)
	evals := make([]domain.Evaluation, len(orders))
	for i, o := range orders {
		evals[i] = domain.Evaluation{
			Order:   o,
			Score:   b.Score(o),
			Message: messages[i],
		}
	}
	return evals, nil
}
