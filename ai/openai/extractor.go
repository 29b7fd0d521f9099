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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/krambot/krambot/ai"
	"github.com/krambot/krambot/core"
)

// IntentExtractor implements ai.IntentExtractor using OpenAI-compatible chat
// APIs.
type IntentExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// intentPayload matches the JSON structure the extraction prompt requests.
type intentPayload struct {
	Intent  string `json:"intent"`
	Brand   string `json:"brand"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Address string `json:"address"`
}

// newIntentExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newIntentExtractor(config *ai.Config) (*IntentExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &IntentExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewIntentExtractor creates a new intent extractor using the provided
// configuration.
//
// Returns ai.IntentExtractor interface to enforce abstraction.
func NewIntentExtractor(config *ai.Config) (ai.IntentExtractor, error) {
	return newIntentExtractor(config)
}

// ExtractIntent classifies a user message with the extraction model.
// Transport failures are returned to the caller; unparseable model output
// degrades to a conversational intent after retries.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, text string) (ai.Intent, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildIntentPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var payload intentPayload
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Intent{}, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return ai.Intent{Kind: ai.IntentConversational}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
			lastErr = err
			e.logger.Warn("error parsing extractor response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		// The user still deserves an answer; treat the message as chat.
		e.logger.Error("failed to parse extractor response after retries", "err", lastErr)
		return ai.Intent{Kind: ai.IntentConversational}, nil
	}

	if payload.Intent != "store_search" {
		return ai.Intent{Kind: ai.IntentConversational}, nil
	}

	query := &core.StoreQuery{
		Brand:   strings.TrimSpace(payload.Brand),
		City:    strings.TrimSpace(payload.City),
		Region:  strings.TrimSpace(payload.Region),
		Address: strings.TrimSpace(payload.Address),
	}
	if !query.Active() {
		// A search intent with nothing to search by is just conversation.
		e.logger.Debug("store search intent without usable fields", "text", text)
		return ai.Intent{Kind: ai.IntentConversational}, nil
	}

	return ai.Intent{Kind: ai.IntentStoreSearch, Store: query}, nil
}

// stripCodeFences removes a surrounding markdown code fence, if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
