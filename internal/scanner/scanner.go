// Package scanner recorre el catálogo de items, evalúa las órdenes de cada uno
// con un buyer.Buyer y entrega los resultados a un ports.Notifier.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/domain"
	"github.com/uselessgoddess/warframe-prime-trash-buyer/internal/ports"
)

// ItemEvaluator es el subconjunto de *buyer.Buyer que usa el scanner.
type ItemEvaluator interface {
	Evaluate(ctx context.Context, item domain.Item) ([]domain.Evaluation, error)
}

// Config contiene la configuración del scanner.
type Config struct {
	ScanInterval time.Duration
	Items        ItemFilterConfig
	Workers      int
	CatalogTTL   time.Duration
	Once         bool // ejecuta un solo ciclo y termina
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		ScanInterval: 5 * time.Minute,
		Items:        DefaultItemFilterConfig(),
		Workers:      1,
		CatalogTTL:   24 * time.Hour,
	}
}

// Result es el resultado de un ciclo.
type Result struct {
	CycleID     string
	Items       int // items evaluados
	Failed      int // items cuyo fetch de órdenes falló
	Evaluations []domain.Evaluation
}

// Scanner es el orquestador del loop de escaneo.
type Scanner struct {
	cfg      Config
	market   ports.MarketClient
	buyer    ItemEvaluator
	catalog  ports.ItemCatalog // opcional
	notifier ports.Notifier
	filter   *ItemFilter
	logger   *slog.Logger
}

// New crea un Scanner con todas las dependencias inyectadas.
// catalog puede ser nil: entonces el listado de items se pide a la API en cada ciclo.
func New(
	cfg Config,
	market ports.MarketClient,
	buyer ItemEvaluator,
	catalog ports.ItemCatalog,
	notifier ports.Notifier,
) *Scanner {
	return &Scanner{
		cfg:      cfg,
		market:   market,
		buyer:    buyer,
		catalog:  catalog,
		notifier: notifier,
		filter:   NewItemFilter(cfg.Items),
		logger:   slog.Default().With("component", "scanner"),
	}
}

// Run ejecuta el loop de escaneo hasta que el contexto se cancele.
// Si cfg.Once está activo, solo ejecuta un ciclo y devuelve su error.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"workers", s.cfg.Workers,
		"once", s.cfg.Once,
	)

	if err := s.runCycle(ctx); err != nil {
		s.logger.Error("scan cycle failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}
	if s.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				s.logger.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve el resultado sin notificar.
func (s *Scanner) RunOnce(ctx context.Context) (Result, error) {
	return s.cycle(ctx)
}

// EvaluateSlug evalúa un único item por su slug. El item se resuelve contra el
// catálogo (cache y luego API) para que nombre y vaulted sean los mismos que en
// un ciclo normal; si el slug no aparece, o el catálogo no se puede cargar, se
// evalúa con un item mínimo porque el endpoint de órdenes solo necesita el slug.
func (s *Scanner) EvaluateSlug(ctx context.Context, slug string) ([]domain.Evaluation, error) {
	log := s.logger.With("item", slug)
	item := s.resolveItem(ctx, slug, log)

	evals, err := s.buyer.Evaluate(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("scanner.EvaluateSlug %s: %w", slug, err)
	}
	return rankByScore(evals), nil
}

func (s *Scanner) resolveItem(ctx context.Context, slug string, log *slog.Logger) domain.Item {
	all, err := s.loadItems(ctx, log)
	if err != nil {
		log.Warn("item catalog unavailable, using bare slug", "err", err)
		return domain.Item{URLName: slug}
	}
	for _, it := range all {
		if it.URLName == slug {
			return it
		}
	}
	log.Warn("item not in catalog, using bare slug")
	return domain.Item{URLName: slug}
}

// runCycle ejecuta un ciclo completo y notifica los resultados.
func (s *Scanner) runCycle(ctx context.Context) error {
	start := time.Now()

	res, err := s.cycle(ctx)
	if err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, res.Evaluations); err != nil {
		s.logger.Warn("notifier error", "cycle_id", res.CycleID, "err", err)
	}

	s.logger.Info("scan cycle complete",
		"cycle_id", res.CycleID,
		"items", res.Items,
		"failed", res.Failed,
		"orders", len(res.Evaluations),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle hace items → filter → evaluate → rank.
func (s *Scanner) cycle(ctx context.Context) (Result, error) {
	res := Result{CycleID: uuid.New().String()}
	log := s.logger.With("cycle_id", res.CycleID)

	all, err := s.loadItems(ctx, log)
	if err != nil {
		return res, fmt.Errorf("scanner.cycle: list items: %w", err)
	}

	items := s.filter.Apply(all)
	log.Debug("items selected", "catalog", len(all), "selected", len(items))

	for _, r := range evaluateItemsConcurrent(ctx, s.buyer, items, s.cfg.Workers, log) {
		res.Items++
		if r.err != nil {
			res.Failed++
			log.Warn("evaluate item failed", "item", r.item.URLName, "err", r.err)
			continue
		}
		res.Evaluations = append(res.Evaluations, r.evals...)
	}

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("scanner.cycle: %w", err)
	}

	res.Evaluations = rankByScore(res.Evaluations)
	return res, nil
}

// loadItems devuelve el catálogo cacheado si está fresco; si no, lo pide a la
// API y refresca la cache. Un fallo de la cache nunca impide el ciclo.
func (s *Scanner) loadItems(ctx context.Context, log *slog.Logger) ([]domain.Item, error) {
	if s.catalog != nil {
		items, err := s.catalog.LoadItems(ctx, s.cfg.CatalogTTL)
		switch {
		case err == nil:
			log.Debug("item catalog from cache", "count", len(items))
			return items, nil
		case errors.Is(err, domain.ErrCatalogStale):
			log.Debug("item catalog stale, refreshing")
		default:
			log.Warn("item catalog cache error", "err", err)
		}
	}

	items, err := s.market.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	if s.catalog != nil {
		if err := s.catalog.SaveItems(ctx, items); err != nil {
			log.Warn("item catalog save failed", "err", err)
		}
	}
	return items, nil
}

// rankByScore ordena por score descendente. Es estable: a igual score se
// conserva el orden de la API dentro de cada item.
func rankByScore(evals []domain.Evaluation) []domain.Evaluation {
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].Score > evals[j].Score
	})
	return evals
}
