package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/gemini"
	"github.com/fwojciec/cardsnap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func TestEnricher_Enrich_ReturnsErrorWhenCardNil(t *testing.T) {
	t.Parallel()

	enricher := gemini.NewEnricher(nil, nil) // nil client ok for this test

	_, err := enricher.Enrich(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))
}

func TestEnricher_Enrich_PropagatesConverterError(t *testing.T) {
	t.Parallel()

	conv := &mock.Converter{
		ConvertFn: func(string) (string, error) {
			return "", cardsnap.Errorf(cardsnap.EINVALID, "card has no text content")
		},
	}
	enricher := gemini.NewEnricher(nil, conv)

	_, err := enricher.Enrich(context.Background(), &cardsnap.Card{Markup: `<div class="card"></div>`})

	require.Error(t, err)
	assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))
	assert.Equal(t, "card has no text content", cardsnap.ErrorMessage(err))
}

func TestBuildConfig_RequestsJSONWithAllFields(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
	assert.ElementsMatch(t, []string{"title", "summary", "tags", "colorTheme"}, config.ResponseSchema.Required)
	require.Contains(t, config.ResponseSchema.Properties, "tags")
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Properties["tags"].Type)
	require.NotNil(t, config.ResponseSchema.Properties["tags"].Items)
	assert.Equal(t, genai.TypeString, config.ResponseSchema.Properties["tags"].Items.Type)
}

func TestBuildPrompt_ContainsContentAndFields(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildPrompt("## Pro Plan\n\n$29/month")

	assert.Contains(t, prompt, "---\n## Pro Plan\n\n$29/month\n---")
	assert.Contains(t, prompt, `"title"`)
	assert.Contains(t, prompt, `"summary"`)
	assert.Contains(t, prompt, `"tags"`)
	assert.Contains(t, prompt, `"colorTheme"`)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("keeps content at the limit", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", gemini.MaxContent)

		assert.Equal(t, content, gemini.Truncate(content))
	})

	t.Run("cuts content over the limit", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("a", gemini.TruncatedContent) + strings.Repeat("b", 1001)

		got := gemini.Truncate(content)

		assert.Equal(t, strings.Repeat("a", gemini.TruncatedContent)+"...[truncated]...", got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("é", gemini.MaxContent)

		assert.Equal(t, content, gemini.Truncate(content))
	})
}

func TestParseEnrichment(t *testing.T) {
	t.Parallel()

	t.Run("decodes response", func(t *testing.T) {
		t.Parallel()

		got, err := gemini.ParseEnrichment(`{"title":"Pro Plan","summary":"A pricing tier. For teams.","tags":["pricing","saas","teams"],"colorTheme":"bg-blue-500"}`)

		require.NoError(t, err)
		assert.Equal(t, &cardsnap.Enrichment{
			Title:      "Pro Plan",
			Summary:    "A pricing tier. For teams.",
			Tags:       []string{"pricing", "saas", "teams"},
			ColorTheme: "bg-blue-500",
		}, got)
	})

	t.Run("returns EINTERNAL on empty response", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseEnrichment("  ")

		require.Error(t, err)
		assert.Equal(t, cardsnap.EINTERNAL, cardsnap.ErrorCode(err))
	})

	t.Run("returns EINTERNAL on malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseEnrichment(`{"title":`)

		require.Error(t, err)
		assert.Equal(t, cardsnap.EINTERNAL, cardsnap.ErrorCode(err))
	})
}

func TestEnricher_Enrich_StopsWhenLimiterContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &mock.Converter{
		ConvertFn: func(string) (string, error) { return "text", nil },
	}
	enricher := gemini.NewEnricher(nil, conv, gemini.WithLimiter(rate.NewLimiter(rate.Limit(1), 1)))

	_, err := enricher.Enrich(ctx, &cardsnap.Card{Markup: "<p>text</p>"})

	require.ErrorIs(t, err, context.Canceled)
}
