package krambot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krambot/krambot/ai"
	"github.com/krambot/krambot/ai/mock"
	"github.com/krambot/krambot/config"
	"github.com/krambot/krambot/core"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{InMemory: true},
		Catalog:  config.CatalogConfig{Path: "testdata/stores.json"},
		AI:       config.AIConfig{Host: "http://localhost:11434", ResponderModel: "test", ExtractorModel: "test", MaxReplyTokens: 128},
		History:  config.HistoryConfig{Retention: 30},
		Logging:  config.LoggingConfig{Level: "info"},
	}
}

func newTestAssistant(t *testing.T) (*Assistant, *mock.MockProvider) {
	t.Helper()

	provider := mock.NewMockProvider().(*mock.MockProvider)
	assistant, err := NewAssistant(testConfig(), WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	return assistant, provider
}

func storeSearchIntent(query core.StoreQuery) func(context.Context, string) (ai.Intent, error) {
	return func(ctx context.Context, text string) (ai.Intent, error) {
		return ai.Intent{Kind: ai.IntentStoreSearch, Store: &query}, nil
	}
}

func TestNewAssistant(t *testing.T) {
	t.Run("wires all components", func(t *testing.T) {
		assistant, _ := newTestAssistant(t)

		assert.NotNil(t, assistant.catalog)
		assert.NotNil(t, assistant.ranker)
		assert.NotNil(t, assistant.matcher)
		assert.NotNil(t, assistant.repo)
		assert.NotNil(t, assistant.recorder)
		assert.NotNil(t, assistant.provider)
	})

	t.Run("nil config", func(t *testing.T) {
		assistant, err := NewAssistant(nil)
		assert.ErrorIs(t, err, ErrConfigRequired)
		assert.Nil(t, assistant)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig()
		cfg.Catalog.Path = ""

		assistant, err := NewAssistant(cfg)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Nil(t, assistant)
	})
}

func TestRespondStoreSearch(t *testing.T) {
	assistant, provider := newTestAssistant(t)
	ctx := context.Background()

	provider.GetMockExtractor().ExtractIntentFunc =
		storeSearchIntent(core.StoreQuery{Brand: "Наша Ряба", City: "Покровськ"})

	reply, err := assistant.Respond(ctx, "oleh", "де наша ряба в покровську?")
	require.NoError(t, err)

	assert.Contains(t, reply, "«Наша Ряба»")
	assert.Contains(t, reply, "Покровськ")
	assert.Contains(t, reply, "вул. Шевченка 1")
	// No responder call on the store path.
	assert.Zero(t, provider.GetMockResponder().CallCount())
}

func TestRespondStoreSearchCanonicalizesEntities(t *testing.T) {
	assistant, provider := newTestAssistant(t)

	// Misspelled brand and city still resolve through the entity matcher.
	provider.GetMockExtractor().ExtractIntentFunc =
		storeSearchIntent(core.StoreQuery{Brand: "наша ряба", City: "покровск"})

	reply, err := assistant.Respond(context.Background(), "oleh", "...")
	require.NoError(t, err)
	assert.Contains(t, reply, "«Наша Ряба»")
}

func TestRespondStoreSearchMiss(t *testing.T) {
	// A missing catalog file degrades to an empty catalog, so every
	// store search comes back empty and the polite miss is returned.
	cfg := testConfig()
	cfg.Catalog.Path = "testdata/missing.json"

	provider := mock.NewMockProvider().(*mock.MockProvider)
	assistant, err := NewAssistant(cfg, WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { assistant.Close() })

	provider.GetMockExtractor().ExtractIntentFunc =
		storeSearchIntent(core.StoreQuery{Brand: "Фуршет", City: "Одеса"})

	reply, err := assistant.Respond(context.Background(), "oleh", "де фуршет в одесі?")
	require.NoError(t, err)
	assert.Equal(t, missReply, reply)
}

func TestRespondConversational(t *testing.T) {
	assistant, provider := newTestAssistant(t)
	ctx := context.Background()

	provider.GetMockResponder().ReplyFunc = func(ctx context.Context, turns []ai.Turn) (string, error) {
		return "Вітаю! Чим можу допомогти?", nil
	}

	reply, err := assistant.Respond(ctx, "oleh", "привіт")
	require.NoError(t, err)
	assert.Equal(t, "Вітаю! Чим можу допомогти?", reply)

	// The transcript reaches the responder oldest first and includes the
	// just-recorded user turn.
	turns := provider.GetMockResponder().LastTurns()
	require.NotEmpty(t, turns)
	last := turns[len(turns)-1]
	assert.Equal(t, core.SpeakerHuman, last.Speaker)
	assert.Equal(t, "привіт", last.Contents)
}

func TestRespondRecordsBothTurns(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	ctx := context.Background()

	_, err := assistant.Respond(ctx, "oleh", "привіт, боте")
	require.NoError(t, err)

	user := core.IDFromHandle("oleh")
	recent, err := assistant.repo.RecentMessages(ctx, user, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, core.SpeakerAssistant, recent[0].Speaker)
	assert.Equal(t, core.SpeakerHuman, recent[1].Speaker)
	assert.Equal(t, "привіт, боте", recent[1].Contents)
}

func TestSearchStores(t *testing.T) {
	assistant, _ := newTestAssistant(t)

	matches := assistant.SearchStores(core.StoreQuery{Brand: "АТБ"}, 5)
	require.NotEmpty(t, matches)
	assert.Equal(t, "АТБ", matches[0].Store.Brand)
}

func TestSuggestions(t *testing.T) {
	assistant, _ := newTestAssistant(t)

	brands := assistant.SuggestBrands("ряба", 3)
	assert.Contains(t, brands, "Наша Ряба")

	cities := assistant.SuggestCities("Покр", 3)
	assert.Contains(t, cities, "Покровськ")
}

func TestSearchHistory(t *testing.T) {
	assistant, provider := newTestAssistant(t)
	ctx := context.Background()

	// Fixed reply so only the user's own turn contains the keyword.
	provider.GetMockResponder().ReplyFunc = func(ctx context.Context, turns []ai.Turn) (string, error) {
		return "Зараз подивлюся.", nil
	}

	_, err := assistant.Respond(ctx, "oleh", "шукаю курятину")
	require.NoError(t, err)
	_, err = assistant.Respond(ctx, "oleh", "дякую за допомогу")
	require.NoError(t, err)

	found, err := assistant.SearchHistory(ctx, "oleh", "курятину", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "шукаю курятину", found[0].Contents)
}

func TestResetHistory(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	ctx := context.Background()

	_, err := assistant.Respond(ctx, "oleh", "привіт")
	require.NoError(t, err)

	require.NoError(t, assistant.ResetHistory(ctx, "oleh"))

	recent, err := assistant.repo.RecentMessages(ctx, core.IDFromHandle("oleh"), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestFormatStore(t *testing.T) {
	tests := []struct {
		name  string
		store core.StoreRecord
		want  string
	}{
		{
			name: "full record",
			store: core.StoreRecord{
				Brand:    "Наша Ряба",
				City:     "Покровськ",
				Address:  "вул. Шевченка 1",
				Schedule: "9-21",
			},
			want: "«Наша Ряба» — Покровськ, вул. Шевченка 1 (9-21)",
		},
		{
			name: "no schedule",
			store: core.StoreRecord{
				Brand:   "АТБ",
				City:    "Київ",
				Address: "просп. Перемоги 24",
			},
			want: "«АТБ» — Київ, просп. Перемоги 24",
		},
		{
			name:  "brand only",
			store: core.StoreRecord{Brand: "Сільпо"},
			want:  "«Сільпо»",
		},
		{
			name: "city without address",
			store: core.StoreRecord{
				Brand: "М'ясомаркет",
				City:  "Дніпро",
			},
			want: "«М'ясомаркет» — Дніпро",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatStore(tt.store))
		})
	}
}
