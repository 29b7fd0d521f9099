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


// Package catalog holds the in-memory store catalog.
//
// A Catalog is loaded once from a JSON document and is immutable afterwards.
// Loading never fails loudly: a missing, malformed, or schema-invalid source
// leaves the catalog empty and logs the cause once, so that downstream
// searches degrade to "no results" instead of erroring.
//
// The catalog is an explicitly owned object rather than package-level state;
// construct one with New and hand it to whatever needs it. Concurrent reads
// are safe, and concurrent first Load calls resolve to a single population.
package catalog
