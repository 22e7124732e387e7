package notify

import (
	"context"
	"errors"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/ports"
)

// Multi reenvía las evaluaciones a varios notificadores.
// Un fallo en uno no impide entregar al resto; los errores se combinan.
type Multi []ports.Notifier

// Notify implementa ports.Notifier.
func (m Multi) Notify(ctx context.Context, evaluations []domain.Evaluation) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, evaluations); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
