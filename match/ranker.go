package match

import (
	"log/slog"
	"sort"

	"github.com/krambot/krambot/catalog"
	"github.com/krambot/krambot/core"
)

const (
	// DefaultLimit is the result count used when callers have no opinion.
	DefaultLimit = 10

	// DefaultRegionThreshold is the minimum region similarity a candidate
	// must reach when the query carries a region. Region is a gate, not a
	// scored field: candidates below the threshold are skipped entirely.
	DefaultRegionThreshold = 55.0
)

// Weights holds the fixed per-field scoring weights. Only fields present in
// the query participate; their weights are renormalized to sum to 1.
type Weights struct {
	Brand   float64
	City    float64
	Address float64
}

// DefaultWeights returns the standard field weights.
func DefaultWeights() Weights {
	return Weights{
		Brand:   0.45,
		City:    0.35,
		Address: 0.20,
	}
}

func (w Weights) valid() bool {
	if w.Brand < 0 || w.City < 0 || w.Address < 0 {
		return false
	}
	return w.Brand+w.City+w.Address > 0
}

// Ranker scores a store catalog against partial queries and returns a
// ranked top-K. It holds no mutable state of its own, so one Ranker is safe
// for concurrent use once the catalog is loaded.
type Ranker struct {
	catalog *catalog.Catalog
	weights Weights
	gate    float64
	logger  *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithWeights overrides the field weights.
func WithWeights(w Weights) Option {
	return func(r *Ranker) error {
		if !w.valid() {
			return ErrInvalidWeights
		}
		r.weights = w
		return nil
	}
}

// WithRegionThreshold overrides the region gate threshold.
func WithRegionThreshold(threshold float64) Option {
	return func(r *Ranker) error {
		r.gate = threshold
		return nil
	}
}

// NewRanker creates a ranker over the given catalog.
func NewRanker(cat *catalog.Catalog, opts ...Option) (*Ranker, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}

	r := &Ranker{
		catalog: cat,
		weights: DefaultWeights(),
		gate:    DefaultRegionThreshold,
		logger:  slog.Default().With("component", "ranker"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search ranks the catalog against the query and returns up to limit
// matches, best first. A limit below 1 is coerced to 1. A query with no
// active field returns nil without scanning the catalog, as does an empty
// or unavailable catalog.
func (r *Ranker) Search(query core.StoreQuery, limit int) []core.StoreMatch {
	return r.SearchWithMonitor(query, limit, nil)
}

// SearchWithMonitor ranks the catalog with monitoring. The monitor receives
// callbacks for gate rejections, zero-score drops, scored candidates and
// the final ranking.
func (r *Ranker) SearchWithMonitor(query core.StoreQuery, limit int, monitor RankMonitor) []core.StoreMatch {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if limit < 1 {
		limit = 1
	}

	if !query.Active() {
		r.logger.Debug("query has no active fields, skipping scan")
		monitor.Finish(nil)
		return nil
	}

	// The catalog loads lazily on first use; Load is idempotent.
	r.catalog.Load()

	stores := r.catalog.Stores()
	if len(stores) == 0 {
		monitor.Finish(nil)
		return nil
	}

	type weighted struct {
		weight float64
		value  string
		field  func(*core.StoreRecord) string
	}

	active := make([]weighted, 0, 3)
	if Normalize(query.Brand) != "" {
		active = append(active, weighted{r.weights.Brand, query.Brand,
			func(s *core.StoreRecord) string { return s.Brand }})
	}
	if Normalize(query.City) != "" {
		active = append(active, weighted{r.weights.City, query.City,
			func(s *core.StoreRecord) string { return s.City }})
	}
	if Normalize(query.Address) != "" {
		active = append(active, weighted{r.weights.Address, query.Address,
			func(s *core.StoreRecord) string { return s.Address }})
	}

	var total float64
	for _, a := range active {
		total += a.weight
	}
	if total == 0 {
		total = 1
	}

	gateRegion := Normalize(query.Region) != ""

	matches := make([]core.StoreMatch, 0, limit)
	for i := range stores {
		store := &stores[i]

		if gateRegion {
			regionScore := Score(query.Region, store.Region)
			if regionScore < r.gate {
				monitor.GateRejected(i, regionScore)
				continue
			}
		}

		var score float64
		for _, a := range active {
			score += (a.weight / total) * Score(a.value, a.field(store))
		}

		// A composite of exactly zero is no match at all. Keeping such
		// candidates would let catalogs full of blank fields flood the
		// results with meaningless hits.
		if score == 0 {
			monitor.ZeroDropped(i)
			continue
		}

		monitor.Scored(i, score)
		matches = append(matches, core.StoreMatch{Store: *store, Score: score, Index: i})
	}

	// Stable sort: among equal scores, catalog order decides.
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	monitor.Finish(matches)
	return matches
}
