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


// Package openai implements the ai interfaces against OpenAI-compatible chat
// APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The Responder runs the configured chat model over the conversation
// transcript; the IntentExtractor runs a smaller model in JSON mode at
// temperature 0 to pull structured store-search fields out of a message.
// Extraction tolerates sloppy model output: code fences are stripped, common
// JSON defects are repaired, and after three failed parse attempts the
// extractor falls back to a conversational intent instead of returning an
// error.
package openai
