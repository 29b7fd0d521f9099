package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/krambot/krambot/core"
)

// storesSchema validates the overall shape of the store document: a top-level
// "stores" list of objects with string fields. Individual records may omit
// fields; absent fields simply never earn match credit.
const storesSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["stores"],
  "properties": {
    "stores": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "brand":    {"type": "string"},
          "city":     {"type": "string"},
          "address":  {"type": "string"},
          "region":   {"type": "string"},
          "schedule": {"type": "string"}
        }
      }
    }
  }
}`

// Catalog is an ordered collection of store records loaded once from a JSON
// source and never mutated afterwards.
type Catalog struct {
	source string
	logger *slog.Logger

	mu     sync.RWMutex
	loaded bool
	stores []core.StoreRecord
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New creates a catalog bound to a JSON source file. The source is not read
// until Load is called.
func New(source string, opts ...Option) *Catalog {
	c := &Catalog{
		source: source,
		logger: slog.Default().With("component", "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromRecords creates an already-loaded catalog holding the given
// records. Meant for tests and embedded fixtures; Load on the result is a
// no-op while records remain.
func NewFromRecords(records []core.StoreRecord) *Catalog {
	return &Catalog{
		logger: slog.Default().With("component", "catalog"),
		loaded: true,
		stores: records,
	}
}

// Load reads the store source into memory. The first successful non-empty
// load wins; every later call is a no-op, so the catalog contents and order
// are identical whether Load ran once or many times. Any failure (missing
// file, malformed JSON, schema violation) leaves the catalog empty and is
// logged, never returned: searches against an unavailable catalog must look
// exactly like searches with no matches.
func (c *Catalog) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && len(c.stores) > 0 {
		return
	}

	c.loaded = true
	c.stores = nil

	data, err := os.ReadFile(c.source)
	if err != nil {
		c.logger.Warn("store source unavailable, catalog stays empty", "source", c.source, "err", err)
		return
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(storesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		c.logger.Warn("store source is not valid JSON, catalog stays empty", "source", c.source, "err", err)
		return
	}
	if !result.Valid() {
		c.logger.Warn("store source failed schema validation, catalog stays empty",
			"source", c.source, "violations", len(result.Errors()), "first", result.Errors()[0].String())
		return
	}

	var doc struct {
		Stores []core.StoreRecord `json:"stores"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Warn("store source failed to decode, catalog stays empty", "source", c.source, "err", err)
		return
	}

	c.stores = doc.Stores
	c.logger.Info("loaded store catalog", "source", c.source, "stores", len(c.stores))
}

// Loaded reports whether Load has run, regardless of outcome.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stores)
}

// Stores returns the loaded records in catalog order. The returned slice
// aliases catalog storage; callers must not mutate it.
func (c *Catalog) Stores() []core.StoreRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stores
}
