package scanner

// concurrent.go: worker pool para evaluar varios items en paralelo.
//
// El Buyer no tiene estado, así que los workers lo comparten. Cada item es
// independiente: un fallo se loguea y no afecta al resto.

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
)

// itemResult es lo que produce un worker para un item.
type itemResult struct {
	item  domain.Item
	evals []domain.Evaluation
	err   error
}

// evaluateItemsConcurrent evalúa los items con workers goroutines.
// Con workers <= 1 evalúa secuencialmente en el orden dado.
// Los resultados llegan sin orden garantizado entre items.
func evaluateItemsConcurrent(
	ctx context.Context,
	eval ItemEvaluator,
	items []domain.Item,
	workers int,
	logger *slog.Logger,
) []itemResult {
	if workers <= 1 {
		results := make([]itemResult, 0, len(items))
		for _, it := range items {
			if ctx.Err() != nil {
				break
			}
			evals, err := eval.Evaluate(ctx, it)
			results = append(results, itemResult{item: it, evals: evals, err: err})
		}
		return results
	}

	workCh := make(chan domain.Item)
	resultCh := make(chan itemResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range workCh {
				evals, err := eval.Evaluate(ctx, it)
				resultCh <- itemResult{item: it, evals: evals, err: err}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, it := range items {
			select {
			case workCh <- it:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]itemResult, 0, len(items))
	for r := range resultCh {
		results = append(results, r)
	}

	logger.Debug("concurrent evaluation complete",
		"items_queued", len(items),
		"items_done", len(results),
		"workers", workers,
	)
	return results
}
