package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ResponderHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ExtractorHost)
	assert.Equal(t, "qwen2.5:7b", cfg.ResponderModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ExtractorModel)
	assert.Equal(t, 512, cfg.MaxReplyTokens)
	assert.InDelta(t, 0.7, cfg.ReplyTemperature, 1e-9)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ResponderHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ExtractorHost)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.ResponderHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ExtractorHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithResponderHost("http://chat:8080/v1"),
			WithExtractorHost("http://extract:9090/v1"),
		)

		assert.Equal(t, "http://chat:8080/v1", cfg.ResponderHost)
		assert.Equal(t, "http://extract:9090/v1", cfg.ExtractorHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithResponderModel("gpt-4o-mini"),
			WithExtractorModel("gpt-4o-mini"),
		)

		assert.Equal(t, "gpt-4o-mini", cfg.ResponderModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ExtractorModel)
	})

	t.Run("with reply tuning", func(t *testing.T) {
		cfg := NewConfig(
			WithMaxReplyTokens(256),
			WithReplyTemperature(0.2),
			WithToken("secret"),
		)

		assert.Equal(t, 256, cfg.MaxReplyTokens)
		assert.InDelta(t, 0.2, cfg.ReplyTemperature, 1e-9)
		assert.Equal(t, "secret", cfg.Token)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name              string
		responderHost     string
		extractorHost     string
		expectedResponder string
		expectedExtractor string
	}{
		{
			name:              "already has /v1",
			responderHost:     "http://localhost:11434/v1",
			extractorHost:     "http://localhost:11434/v1",
			expectedResponder: "http://localhost:11434/v1",
			expectedExtractor: "http://localhost:11434/v1",
		},
		{
			name:              "missing /v1",
			responderHost:     "http://localhost:11434",
			extractorHost:     "http://localhost:11434",
			expectedResponder: "http://localhost:11434/v1",
			expectedExtractor: "http://localhost:11434/v1",
		},
		{
			name:              "has trailing slash",
			responderHost:     "http://localhost:11434/",
			extractorHost:     "http://localhost:11434/",
			expectedResponder: "http://localhost:11434/v1",
			expectedExtractor: "http://localhost:11434/v1",
		},
		{
			name:              "empty hosts",
			responderHost:     "",
			extractorHost:     "",
			expectedResponder: "",
			expectedExtractor: "",
		},
		{
			name:              "different formats",
			responderHost:     "http://chat:8080",
			extractorHost:     "http://extract:9090/v1",
			expectedResponder: "http://chat:8080/v1",
			expectedExtractor: "http://extract:9090/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ResponderHost: tt.responderHost,
				ExtractorHost: tt.extractorHost,
			}

			cfg.Normalize()

			assert.Equal(t, tt.expectedResponder, cfg.ResponderHost)
			assert.Equal(t, tt.expectedExtractor, cfg.ExtractorHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ResponderHost:    "http://localhost:11434",
			ExtractorHost:    "http://localhost:11434",
			ResponderModel:   "qwen2.5:7b",
			ExtractorModel:   "qwen2.5:3b",
			MaxReplyTokens:   512,
			ReplyTemperature: 0.7,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.ResponderHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ExtractorHost)
	})

	t.Run("missing responder host", func(t *testing.T) {
		cfg := valid()
		cfg.ResponderHost = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ResponderHost")
	})

	t.Run("missing extractor host", func(t *testing.T) {
		cfg := valid()
		cfg.ExtractorHost = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ExtractorHost")
	})

	t.Run("missing responder model", func(t *testing.T) {
		cfg := valid()
		cfg.ResponderModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ResponderModel")
	})

	t.Run("missing extractor model", func(t *testing.T) {
		cfg := valid()
		cfg.ExtractorModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ExtractorModel")
	})

	t.Run("non-positive reply token cap", func(t *testing.T) {
		cfg := valid()
		cfg.MaxReplyTokens = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MaxReplyTokens")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := valid()
		cfg.ReplyTemperature = 2.5

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ReplyTemperature")
	})

	t.Run("temperature at boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.ReplyTemperature = 0
		assert.NoError(t, cfg.Validate())

		cfg.ReplyTemperature = 2
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Validate()
	require.NoError(t, err)

	cfg = DefaultConfig()
	err = cfg.Validate()
	require.NoError(t, err)
}
