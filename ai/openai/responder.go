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
	"errors"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/krambot/krambot/ai"
	"github.com/krambot/krambot/core"
)

// ErrEmptyCompletion is returned when the model produces no usable reply.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Responder implements ai.Responder using OpenAI-compatible chat APIs.
type Responder struct {
	client      llms.Model
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// newResponder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newResponder(config *ai.Config) (*Responder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ResponderHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ResponderModel),
	)
	if err != nil {
		return nil, err
	}

	return &Responder{
		client:      client,
		maxTokens:   config.MaxReplyTokens,
		temperature: config.ReplyTemperature,
		logger:      slog.Default().With("component", "openai-responder"),
	}, nil
}

// NewResponder creates a new responder using the provided configuration.
//
// Returns ai.Responder interface to enforce abstraction.
func NewResponder(config *ai.Config) (ai.Responder, error) {
	return newResponder(config)
}

// Reply generates the assistant's next utterance for the transcript,
// oldest turn first.
func (r *Responder) Reply(ctx context.Context, turns []ai.Turn) (string, error) {
	content := make([]llms.MessageContent, 0, len(turns)+1)
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeSystem,
		Parts: []llms.ContentPart{
			llms.TextPart(responderSystemPrompt),
		},
	})

	for _, turn := range turns {
		role := llms.ChatMessageTypeHuman
		if turn.Speaker == core.SpeakerAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role: role,
			Parts: []llms.ContentPart{
				llms.TextPart(turn.Contents),
			},
		})
	}

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithTemperature(r.temperature),
		llms.WithMaxTokens(r.maxTokens))
	if err != nil {
		r.logger.Error("failed to generate reply", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrEmptyCompletion
	}

	reply := strings.TrimSpace(response.Choices[0].Content)
	if reply == "" {
		return "", ErrEmptyCompletion
	}
	return reply, nil
}
