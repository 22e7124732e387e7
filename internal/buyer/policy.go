package buyer

import (
	"fmt"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// Filter decide si una orden raw (sin Item) merece evaluarse.
// Debe ser pura: sin I/O ni estado externo.
type Filter func(order domain.Order) bool

// Scorer estima la rentabilidad de una orden enriquecida. Mayor es mejor.
type Scorer func(order domain.Order) int

// Renderer produce el mensaje legible de una orden enriquecida.
// Recibe el Scorer en lugar del score ya calculado, así puede recalcularlo
// o usar uno distinto al del pipeline.
type Renderer func(order domain.Order, score Scorer) string

// Policy agrupa las tres estrategias intercambiables del Buyer.
// Los campos nil se sustituyen por los defaults en New.
type Policy struct {
	Filter   Filter
	Scorer   Scorer
	Renderer Renderer
}

// DefaultPolicy devuelve la política por defecto: solo órdenes de venta,
// score = -platinum, mensaje con whisper listo para pegar en el chat.
func DefaultPolicy() Policy {
	return Policy{
		Filter:   DefaultFilter,
		Scorer:   DefaultScorer,
		Renderer: DefaultRenderer,
	}
}

// withDefaults rellena los campos vacíos con los defaults.
func (p Policy) withDefaults() Policy {
	if p.Filter == nil {
		p.Filter = DefaultFilter
	}
	if p.Scorer == nil {
		p.Scorer = DefaultScorer
	}
	if p.Renderer == nil {
		p.Renderer = DefaultRenderer
	}
	return p
}

// DefaultFilter acepta solo órdenes de venta: somos compradores.
func DefaultFilter(order domain.Order) bool {
	return order.OrderType == domain.OrderTypeSell
}

// DefaultScorer devuelve -platinum: cuanto más barata la orden de venta, mayor el score.
func DefaultScorer(order domain.Order) int {
	return -order.Platinum
}

// DefaultRenderer formatea la orden como
//
//	[slug] /w Seller Hi! I want to buy: "Item Name" for N platinum. (score S)
func DefaultRenderer(order domain.Order, score Scorer) string {
	slug, name := "", ""
	if order.Item != nil {
		slug, name = order.Item.URLName, order.Item.DisplayName()
	}
	return fmt.Sprintf("[%s] /w %s Hi! I want to buy: %q for %d platinum. (score %d)",
		slug, order.User.IngameName, name, order.Platinum, score(order))
}

// --- filtros componibles ---

// AllOf acepta una orden solo si todos los filtros la aceptan.
// Sin filtros acepta todo.
func AllOf(filters ...Filter) Filter {
	return func(order domain.Order) bool {
		for _, f := range filters {
			if f != nil && !f(order) {
				return false
			}
		}
		return true
	}
}

// MaxPlatinum acepta órdenes con precio <= limit.
func MaxPlatinum(limit int) Filter {
	return func(order domain.Order) bool {
		return order.Platinum <= limit
	}
}

// OnlineOnly acepta órdenes cuyo dueño puede responder ahora (online o in game).
func OnlineOnly() Filter {
	return func(order domain.Order) bool {
		return order.User.Status.IsAvailable()
	}
}

// OnPlatform acepta órdenes de la plataforma dada.
func OnPlatform(platform string) Filter {
	return func(order domain.Order) bool {
		return order.Platform == platform
	}
}

// MinReputation acepta órdenes de usuarios con reputación >= threshold.
func MinReputation(threshold int) Filter {
	return func(order domain.Order) bool {
		return order.User.Reputation >= threshold
	}
}

// VisibleOnly descarta órdenes ocultas.
func VisibleOnly() Filter {
	return func(order domain.Order) bool {
		return order.Visible
	}
}

// VaultedBonus suma bonus al score de base cuando el item está vaulted.
func VaultedBonus(base Scorer, bonus int) Scorer {
	if base == nil {
		base = DefaultScorer
	}
	return func(order domain.Order) int {
		s := base(order)
		if order.Item != nil && order.Item.IsVaulted() {
			s += bonus
		}
		return s
	}
}

// PolicyConfig son las opciones de la sección buyer del config que afectan a la política.
// Los valores cero desactivan cada criterio.
type PolicyConfig struct {
	MaxPlatinum   int
	OnlyOnline    bool
	Platform      string
	MinReputation int
	VaultedBonus  int
}

// PolicyFromConfig construye la política a partir de la configuración.
// Siempre parte de DefaultFilter (solo ventas) y añade los criterios activos.
func PolicyFromConfig(cfg PolicyConfig) Policy {
	filters := []Filter{DefaultFilter, VisibleOnly()}
	if cfg.MaxPlatinum > 0 {
		filters = append(filters, MaxPlatinum(cfg.MaxPlatinum))
	}
	if cfg.OnlyOnline {
		filters = append(filters, OnlineOnly())
	}
	if cfg.Platform != "" {
		filters = append(filters, OnPlatform(cfg.Platform))
	}
	if cfg.MinReputation > 0 {
		filters = append(filters, MinReputation(cfg.MinReputation))
	}

	p := DefaultPolicy()
	p.Filter = AllOf(filters...)
	if cfg.VaultedBonus != 0 {
		p.Scorer = VaultedBonus(DefaultScorer, cfg.VaultedBonus)
	}
	return p
}
