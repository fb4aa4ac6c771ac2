package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
	"github.com/fairyhunter13/resume-scorer/internal/scoring"
)

func Test_Parse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "openrouter", cfg.LLMProvider)
	assert.Equal(t, "qwen/qwen3-32b:free", cfg.LLMModel)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "pdf", cfg.TextExtractor)
	assert.Equal(t, "memory", cfg.FeedbackStore)
	assert.Equal(t, time.Duration(0), cfg.FeedbackTTL)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 3, cfg.LLMBreakerThreshold)
	assert.Equal(t, 30*time.Second, cfg.LLMBreakerCooldown)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.LLMConfigured())
}

func Test_Parse_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://a.example, https://b.example")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("FEEDBACK_TTL", "30m")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.True(t, cfg.LLMConfigured())
	assert.Equal(t, "gemini-2.0-flash", cfg.ActiveModel())
	assert.Equal(t, 30*time.Minute, cfg.FeedbackTTL)
}

func Test_Parse_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"bad provider":  {"LLM_PROVIDER", "cohere"},
		"bad extractor": {"TEXT_EXTRACTOR", "docx"},
		"bad store":     {"FEEDBACK_STORE", "etcd"},
		"bad port":      {"PORT", "70000"},
		"bad duration":  {"LLM_TIMEOUT", "soon"},
		"negative ttl":  {"FEEDBACK_TTL", "-1s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "op=config.Load")
		})
	}
}

func Test_Load_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OTEL_SERVICE_NAME=from-dotenv\n"), 0o600))
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("OTEL_SERVICE_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.OTELServiceName)
}

func Test_LoadWeights(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		ws, err := LoadWeights("")
		require.NoError(t, err)
		assert.Len(t, ws, 5)
	})

	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		body := "weights:\n  keyword_match: 0.5\n  action_verb: 0.2\n  quantified_experience: 0.2\n  section_coverage: 0.05\n  formatting: 0.05\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		ws, err := LoadWeights(path)
		require.NoError(t, err)
		require.Len(t, ws, 5)
		assert.Equal(t, scoring.NameKeywordMatch, ws[0].Name)
		assert.Equal(t, 0.5, ws[0].Weight)
	})

	t.Run("sum must be one", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		body := "weights:\n  keyword_match: 0.9\n  action_verb: 0.2\n  quantified_experience: 0.2\n  section_coverage: 0.05\n  formatting: 0.1\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, err := LoadWeights(path)
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte("weights: [1, 2"), 0o600))
		_, err := LoadWeights(path)
		require.Error(t, err)
	})
}
