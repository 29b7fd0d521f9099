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


// Package krambot assembles the store-locator assistant: a fuzzy store
// search over a JSON catalog, per-user conversation history in BadgerDB and
// language-model services for intent extraction and replies.
package krambot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/krambot/krambot/ai"
	"github.com/krambot/krambot/ai/openai"
	"github.com/krambot/krambot/catalog"
	"github.com/krambot/krambot/config"
	"github.com/krambot/krambot/core"
	"github.com/krambot/krambot/history"
	historybadger "github.com/krambot/krambot/history/badger"
	"github.com/krambot/krambot/match"
)

// ErrConfigRequired is returned when NewAssistant is called without a config.
var ErrConfigRequired = errors.New("config is required")

// missReply is sent when a store search finds nothing.
const missReply = "На жаль, я не знайшов магазинів за вашим запитом. Спробуйте уточнити назву мережі або місто."

// Assistant is the top-level conversational store locator.
type Assistant struct {
	catalog  *catalog.Catalog
	ranker   *match.Ranker
	matcher  *match.EntityMatcher
	backend  *historybadger.Backend
	repo     history.MessageRepository
	recorder *history.Recorder
	provider ai.Provider
	logger   *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	provider   ai.Provider
	repository history.MessageRepository
}

// WithProvider overrides the AI provider. Intended for tests.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithRepository overrides the message repository. Intended for tests.
// The assistant takes ownership and closes it on Close.
func WithRepository(repository history.MessageRepository) AssistantOption {
	return func(o *assistantOptions) {
		o.repository = repository
	}
}

// NewAssistant wires the assistant from configuration.
func NewAssistant(cfg *config.Config, opts ...AssistantOption) (*Assistant, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &assistantOptions{}
	for _, opt := range opts {
		opt(options)
	}

	cat := catalog.New(cfg.Catalog.Path)

	ranker, err := match.NewRanker(cat)
	if err != nil {
		return nil, err
	}

	matcher, err := match.NewEntityMatcher(cat)
	if err != nil {
		return nil, err
	}

	var backend *historybadger.Backend
	repo := options.repository
	if repo == nil {
		backend, err = historybadger.OpenBackend(cfg.Database.Path, cfg.Database.InMemory)
		if err != nil {
			return nil, err
		}
		repo, err = historybadger.NewMessageRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	recorder, err := history.NewRecorder(repo, history.WithRetention(cfg.History.Retention))
	if err != nil {
		repo.Close()
		if backend != nil {
			backend.Close()
		}
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		aiConfig := ai.NewConfig(
			ai.WithHost(cfg.AI.Host),
			ai.WithResponderModel(cfg.AI.ResponderModel),
			ai.WithExtractorModel(cfg.AI.ExtractorModel),
			ai.WithToken(cfg.AI.Token),
			ai.WithMaxReplyTokens(cfg.AI.MaxReplyTokens),
			ai.WithReplyTemperature(cfg.AI.Temperature),
		)
		provider, err = openai.NewProvider(aiConfig)
		if err != nil {
			recorder.Release()
			repo.Close()
			if backend != nil {
				backend.Close()
			}
			return nil, err
		}
	}

	return &Assistant{
		catalog:  cat,
		ranker:   ranker,
		matcher:  matcher,
		backend:  backend,
		repo:     repo,
		recorder: recorder,
		provider: provider,
		logger:   slog.Default().With("component", "assistant"),
	}, nil
}

// Respond handles one user message end to end: it records the turn, decides
// between a store search and plain conversation, produces the reply and
// records it.
func (a *Assistant) Respond(ctx context.Context, userHandle string, text string) (string, error) {
	user := core.IDFromHandle(userHandle)

	if _, err := a.recorder.RecordUser(ctx, user, text); err != nil {
		return "", err
	}

	intent, err := a.provider.IntentExtractor().ExtractIntent(ctx, text)
	if err != nil {
		return "", err
	}

	var reply string
	switch intent.Kind {
	case ai.IntentStoreSearch:
		reply = a.replyWithStores(*intent.Store)
	default:
		reply, err = a.replyConversationally(ctx, user)
		if err != nil {
			return "", err
		}
	}

	if _, err := a.recorder.RecordAssistant(ctx, user, reply); err != nil {
		a.logger.Error("error recording assistant reply", "user", user, "err", err)
	}
	return reply, nil
}

// replyWithStores canonicalizes the extracted entities, runs the ranked
// search and formats the results.
func (a *Assistant) replyWithStores(query core.StoreQuery) string {
	if canonical, ok := a.matcher.MatchBrand(query.Brand); ok {
		query.Brand = canonical
	}
	if canonical, ok := a.matcher.MatchCity(query.City); ok {
		query.City = canonical
	}

	matches := a.ranker.Search(query, match.DefaultLimit)
	if len(matches) == 0 {
		return missReply
	}

	var b strings.Builder
	b.WriteString("Ось що я знайшов:\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatStore(m.Store))
	}
	return strings.TrimRight(b.String(), "\n")
}

// replyConversationally answers from the recent conversation transcript.
func (a *Assistant) replyConversationally(ctx context.Context, user core.ID) (string, error) {
	recent, err := a.repo.RecentMessages(ctx, user, history.DefaultRetention)
	if err != nil {
		return "", err
	}

	// RecentMessages is newest first; the responder wants oldest first.
	turns := make([]ai.Turn, len(recent))
	for i, message := range recent {
		turns[len(recent)-1-i] = ai.Turn{
			Speaker:  message.Speaker,
			Contents: message.Contents,
		}
	}

	return a.provider.Responder().Reply(ctx, turns)
}

// SearchStores runs the ranked store search directly, bypassing intent
// extraction.
func (a *Assistant) SearchStores(query core.StoreQuery, limit int) []core.StoreMatch {
	return a.ranker.Search(query, limit)
}

// SuggestBrands returns catalog brand names resembling raw.
func (a *Assistant) SuggestBrands(raw string, max int) []string {
	return a.matcher.SuggestBrands(raw, max)
}

// SuggestCities returns catalog city names resembling raw.
func (a *Assistant) SuggestCities(raw string, max int) []string {
	return a.matcher.SuggestCities(raw, max)
}

// SearchHistory finds the user's past messages containing the query.
func (a *Assistant) SearchHistory(ctx context.Context, userHandle string, query string, limit int) ([]*core.Message, error) {
	return a.repo.SearchMessages(ctx, core.IDFromHandle(userHandle), query, limit)
}

// ResetHistory wipes the user's conversation history.
func (a *Assistant) ResetHistory(ctx context.Context, userHandle string) error {
	return a.repo.DeleteUserMessages(ctx, core.IDFromHandle(userHandle))
}

// Close releases the assistant's resources.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	a.recorder.Release()

	if err := a.repo.Close(); err != nil {
		a.logger.Error("error closing message repository", "err", err)
		return err
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// FormatStore renders one catalog record as a single human-readable line.
func FormatStore(store core.StoreRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "«%s»", store.Brand)

	location := make([]string, 0, 2)
	if store.City != "" {
		location = append(location, store.City)
	}
	if store.Address != "" {
		location = append(location, store.Address)
	}
	if len(location) > 0 {
		b.WriteString(" — ")
		b.WriteString(strings.Join(location, ", "))
	}
	if store.Schedule != "" {
		fmt.Fprintf(&b, " (%s)", store.Schedule)
	}
	return b.String()
}
