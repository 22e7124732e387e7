package ports

import (
	"context"
	"time"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// ItemCatalog cachea el listado de items entre ejecuciones.
// Solo guarda metadata de items, nunca órdenes.
type ItemCatalog interface {
	// SaveItems reemplaza el snapshot guardado por items.
	SaveItems(ctx context.Context, items []domain.Item) error

	// LoadItems devuelve el último snapshot si tiene menos de maxAge.
	// Devuelve domain.ErrCatalogStale si no hay snapshot o está caducado.
	LoadItems(ctx context.Context, maxAge time.Duration) ([]domain.Item, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
