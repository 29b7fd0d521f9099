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


// Package ai provides abstractions for the language-model services used in
// Krambot.
//
// This package defines interfaces for the two model-driven operations the
// assistant needs: generating conversational replies and extracting a
// structured search intent from a user message. It follows the dependency
// inversion principle, allowing the assistant logic to depend on abstractions
// rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Responder: Generates a reply from a conversation transcript
//   - IntentExtractor: Classifies a message and pulls out store-search fields
//   - Provider: Aggregates both services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return INTERFACE types to enforce
// abstraction; mock constructors return CONCRETE types so tests can inject
// behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent, err := provider.IntentExtractor().ExtractIntent(ctx, "де купити курятину в покровську")
//	if intent.Kind == ai.IntentStoreSearch {
//	    // run the store search with intent.Store
//	}
package ai
