// Copyright 2026 Krambot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package match ranks store records against partial, possibly misspelled
// queries.
//
// The Ranker type implements a weighted multi-field matcher:
//   - Per-field similarity via a token-set fuzzy ratio (0-100)
//   - Fixed field weights (brand 0.45, city 0.35, address 0.20),
//     renormalized over the fields actually present in the query
//   - A region gate that rejects candidates below a similarity threshold
//     before any scoring happens
//
// Candidates whose composite score is exactly zero are dropped, results are
// sorted by score descending with catalog order preserved among ties, and
// the list is truncated to the requested limit.
//
// EntityMatcher resolves noisy brand and city strings to canonical catalog
// values ahead of ranking.
package match
