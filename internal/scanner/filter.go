package scanner

import (
	"strings"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// ItemFilterConfig decide qué items del catálogo se escanean.
type ItemFilterConfig struct {
	// Slugs lista explícita de url_name. Si no está vacía, solo se escanean
	// esos items (en ese orden) y el resto de criterios se ignora.
	Slugs []string
	// NameContains exige que el nombre del item contenga este texto (sin distinguir mayúsculas).
	NameContains string
	// OnlyVaulted descarta items que no están marcados como vaulted.
	OnlyVaulted bool
	// MaxItems limita cuántos items se escanean por ciclo. 0 = sin límite.
	MaxItems int
}

// DefaultItemFilterConfig escanea todos los items Prime.
func DefaultItemFilterConfig() ItemFilterConfig {
	return ItemFilterConfig{NameContains: "Prime"}
}

// ItemFilter aplica ItemFilterConfig sobre el catálogo.
type ItemFilter struct {
	cfg ItemFilterConfig
}

// NewItemFilter crea un ItemFilter con la configuración dada.
func NewItemFilter(cfg ItemFilterConfig) *ItemFilter {
	return &ItemFilter{cfg: cfg}
}

// Apply devuelve los items que pasan el filtro, en el orden del catálogo.
func (f *ItemFilter) Apply(items []domain.Item) []domain.Item {
	if len(f.cfg.Slugs) > 0 {
		return f.bySlug(items)
	}

	result := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if f.cfg.MaxItems > 0 && len(result) >= f.cfg.MaxItems {
			break
		}
		if f.passes(it) {
			result = append(result, it)
		}
	}
	return result
}

func (f *ItemFilter) passes(it domain.Item) bool {
	if f.cfg.OnlyVaulted && !it.IsVaulted() {
		return false
	}
	if f.cfg.NameContains != "" &&
		!strings.Contains(strings.ToLower(it.DisplayName()), strings.ToLower(f.cfg.NameContains)) {
		return false
	}
	return true
}

// bySlug devuelve los items pedidos explícitamente. Un slug que no está en el
// catálogo se escanea igual con un Item mínimo: la API de órdenes solo necesita el slug.
func (f *ItemFilter) bySlug(items []domain.Item) []domain.Item {
	index := make(map[string]domain.Item, len(items))
	for _, it := range items {
		index[it.URLName] = it
	}

	result := make([]domain.Item, 0, len(f.cfg.Slugs))
	for _, slug := range f.cfg.Slugs {
		if it, ok := index[slug]; ok {
			result = append(result, it)
			continue
		}
		result = append(result, domain.Item{URLName: slug})
	}
	return result
}
