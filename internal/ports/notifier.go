package ports

import (
	"context"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// Notifier presenta las órdenes evaluadas al usuario.
type Notifier interface {
	// Notify recibe las evaluaciones de un ciclo ya ordenadas por score.
	Notify(ctx context.Context, evaluations []domain.Evaluation) error
}
