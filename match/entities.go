package match

import (
	"log/slog"
	"sync"

	sahilm "github.com/sahilm/fuzzy"

	"github.com/krambot/krambot/catalog"
)

// DefaultMatchThreshold is the minimum similarity a canonical value must
// reach before a matcher commits to it.
const DefaultMatchThreshold = 70.0

// EntityMatcher resolves noisy user-supplied brand and city strings to the
// canonical values present in the catalog. It is an upstream filter: when it
// cannot resolve a value confidently it reports no match, and the caller
// decides whether to proceed with the raw value, ask the user, or fall back
// to the conversational path.
type EntityMatcher struct {
	catalog   *catalog.Catalog
	threshold float64
	logger    *slog.Logger

	once   sync.Once
	brands []string
	cities []string
}

// MatcherOption configures an EntityMatcher.
type MatcherOption func(*EntityMatcher)

// WithMatchThreshold overrides the confidence threshold.
func WithMatchThreshold(threshold float64) MatcherOption {
	return func(m *EntityMatcher) {
		m.threshold = threshold
	}
}

// WithMatcherLogger sets a custom logger.
// Default is slog.Default().
func WithMatcherLogger(logger *slog.Logger) MatcherOption {
	return func(m *EntityMatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewEntityMatcher creates a matcher over the given catalog's canonical
// brand and city values.
func NewEntityMatcher(cat *catalog.Catalog, opts ...MatcherOption) (*EntityMatcher, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}

	m := &EntityMatcher{
		catalog:   cat,
		threshold: DefaultMatchThreshold,
		logger:    slog.Default().With("component", "entity-matcher"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// canonical collects the distinct brand and city values in first-seen
// catalog order. The catalog is immutable after load, so this runs once.
func (m *EntityMatcher) canonical() {
	m.once.Do(func() {
		m.catalog.Load()

		seenBrand := make(map[string]bool)
		seenCity := make(map[string]bool)
		for _, store := range m.catalog.Stores() {
			if b := Normalize(store.Brand); b != "" && !seenBrand[b] {
				seenBrand[b] = true
				m.brands = append(m.brands, store.Brand)
			}
			if c := Normalize(store.City); c != "" && !seenCity[c] {
				seenCity[c] = true
				m.cities = append(m.cities, store.City)
			}
		}
	})
}

// MatchBrand resolves a raw brand string to its canonical catalog value.
// The second return is false when no value clears the threshold.
func (m *EntityMatcher) MatchBrand(raw string) (string, bool) {
	m.canonical()
	return m.best(raw, m.brands)
}

// MatchCity resolves a raw city string to its canonical catalog value.
// The second return is false when no value clears the threshold.
func (m *EntityMatcher) MatchCity(raw string) (string, bool) {
	m.canonical()
	return m.best(raw, m.cities)
}

func (m *EntityMatcher) best(raw string, values []string) (string, bool) {
	if Normalize(raw) == "" || len(values) == 0 {
		return "", false
	}

	bestScore := -1.0
	bestValue := ""
	for _, v := range values {
		if s := Score(raw, v); s > bestScore {
			bestScore = s
			bestValue = v
		}
	}

	if bestScore < m.threshold {
		m.logger.Debug("no confident entity match", "raw", raw, "best", bestValue, "score", bestScore)
		return "", false
	}
	return bestValue, true
}

// SuggestBrands returns up to max canonical brands fuzzily matching the raw
// input, best first. Meant for interactive "did you mean" surfaces.
func (m *EntityMatcher) SuggestBrands(raw string, max int) []string {
	m.canonical()
	return suggest(raw, m.brands, max)
}

// SuggestCities returns up to max canonical cities fuzzily matching the raw
// input, best first.
func (m *EntityMatcher) SuggestCities(raw string, max int) []string {
	m.canonical()
	return suggest(raw, m.cities, max)
}

func suggest(raw string, values []string, max int) []string {
	if max < 1 || Normalize(raw) == "" {
		return nil
	}

	results := sahilm.Find(raw, values)
	out := make([]string, 0, max)
	for _, r := range results {
		out = append(out, r.Str)
		if len(out) == max {
			break
		}
	}
	return out
}
