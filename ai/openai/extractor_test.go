package openai

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/krambot/krambot/ai"
)

// scriptedModel replays a fixed sequence of completions, one per
// GenerateContent call, and counts how often it was asked.
type scriptedModel struct {
	replies []string
	err     error
	calls   int
}

var _ llms.Model = (*scriptedModel)(nil)

func (m *scriptedModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	idx := m.calls - 1
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1 // keep replaying the last reply
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.replies[idx]}},
	}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	response, err := m.GenerateContent(ctx, nil, options...)
	if err != nil {
		return "", err
	}
	return response.Choices[0].Content, nil
}

func newScriptedExtractor(model *scriptedModel) *IntentExtractor {
	return &IntentExtractor{
		client: model,
		logger: slog.Default().With("component", "openai-extractor"),
	}
}

func TestExtractIntent_StoreSearch(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"intent": "store_search", "brand": " Наша Ряба ", "city": "Покровськ", "region": "", "address": ""}`,
	}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "де наша ряба в покровську?")
	require.NoError(t, err)

	assert.Equal(t, ai.IntentStoreSearch, intent.Kind)
	require.NotNil(t, intent.Store)
	assert.Equal(t, "Наша Ряба", intent.Store.Brand)
	assert.Equal(t, "Покровськ", intent.Store.City)
	assert.Equal(t, 1, model.calls)
}

func TestExtractIntent_Conversation(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"intent": "conversation", "brand": "", "city": "", "region": "", "address": ""}`,
	}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "привіт")
	require.NoError(t, err)
	assert.Equal(t, ai.IntentConversational, intent.Kind)
	assert.Nil(t, intent.Store)
}

func TestExtractIntent_RetriesThenParses(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{{not json at all`,
		`{"intent": "store_search", "brand": "АТБ", "city": "", "region": "", "address": ""}`,
	}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "де атб?")
	require.NoError(t, err)
	assert.Equal(t, ai.IntentStoreSearch, intent.Kind)
	assert.Equal(t, 2, model.calls)
}

func TestExtractIntent_MalformedAfterRetriesFallsBack(t *testing.T) {
	model := &scriptedModel{replies: []string{`]]]broken[[[`}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "де атб?")
	require.NoError(t, err)

	// Unusable model output never reaches the user as an error.
	assert.Equal(t, ai.IntentConversational, intent.Kind)
	assert.Nil(t, intent.Store)
	assert.Equal(t, 3, model.calls)
}

func TestExtractIntent_StoreSearchWithoutFieldsIsConversation(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"intent": "store_search", "brand": "  ", "city": "", "region": "Донецька область", "address": ""}`,
	}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "шукаю магазин")
	require.NoError(t, err)

	// Region alone cannot drive a search.
	assert.Equal(t, ai.IntentConversational, intent.Kind)
	assert.Nil(t, intent.Store)
}

func TestExtractIntent_TransportErrorSurfaces(t *testing.T) {
	transportErr := errors.New("connection refused")
	model := &scriptedModel{err: transportErr}
	extractor := newScriptedExtractor(model)

	_, err := extractor.ExtractIntent(context.Background(), "привіт")
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, 1, model.calls)
}

func TestExtractIntent_FencedOutputAccepted(t *testing.T) {
	model := &scriptedModel{replies: []string{
		"```json\n{\"intent\": \"store_search\", \"brand\": \"Сільпо\", \"city\": \"Київ\", \"region\": \"\", \"address\": \"\"}\n```",
	}}
	extractor := newScriptedExtractor(model)

	intent, err := extractor.ExtractIntent(context.Background(), "сільпо в києві")
	require.NoError(t, err)
	assert.Equal(t, ai.IntentStoreSearch, intent.Kind)
	require.NotNil(t, intent.Store)
	assert.Equal(t, "Сільпо", intent.Store.Brand)
}
