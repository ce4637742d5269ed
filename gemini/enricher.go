// Package gemini enriches cards with metadata generated by Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/cardsnap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Card content longer than MaxContent characters is cut to TruncatedContent
// characters before prompting.
const (
	MaxContent       = 5000
	TruncatedContent = 4000
	truncationMarker = "...[truncated]..."
)

// Ensure Enricher implements cardsnap.Enricher at compile time.
var _ cardsnap.Enricher = (*Enricher)(nil)

// Enricher implements cardsnap.Enricher using Google Gemini.
type Enricher struct {
	client    *genai.Client
	converter cardsnap.Converter
	model     string
	limiter   *rate.Limiter
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithModel sets the Gemini model name.
func WithModel(model string) EnricherOption {
	return func(e *Enricher) {
		if model != "" {
			e.model = model
		}
	}
}

// WithLimiter paces requests through l.
func WithLimiter(l *rate.Limiter) EnricherOption {
	return func(e *Enricher) {
		e.limiter = l
	}
}

// NewEnricher creates a new Enricher. converter reduces card markup to text
// before it is sent to the model.
func NewEnricher(client *genai.Client, converter cardsnap.Converter, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		client:    client,
		converter: converter,
		model:     DefaultModel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich asks the model for a title, summary, tags and color theme
// describing card.
func (e *Enricher) Enrich(ctx context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error) {
	if card == nil {
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "card required")
	}

	content, err := e.converter.Convert(card.Markup)
	if err != nil {
		return nil, err
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(content)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, cardsnap.Errorf(cardsnap.EINTERNAL, "gemini returned nil result")
	}

	return ParseEnrichment(result.Text())
}

// BuildConfig returns the GenerateContentConfig requesting a JSON object
// with every enrichment field present.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":   {Type: genai.TypeString},
				"summary": {Type: genai.TypeString},
				"tags": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"colorTheme": {Type: genai.TypeString},
			},
			Required: []string{"title", "summary", "tags", "colorTheme"},
		},
	}
}

// BuildPrompt builds the prompt describing the expected metadata for content.
func BuildPrompt(content string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following raw content extracted from a website (e.g. a product card, an article snippet, or a div):\n")
	sb.WriteString("---\n")
	sb.WriteString(Truncate(content))
	sb.WriteString("\n---\n\n")
	sb.WriteString("Return a JSON object with:\n")
	sb.WriteString(`1. "title": A catchy, short title (max 40 chars) derived from the content.` + "\n")
	sb.WriteString(`2. "summary": A 2-sentence summary of what this specific content block is about.` + "\n")
	sb.WriteString(`3. "tags": An array of 3 key hashtags/topics.` + "\n")
	sb.WriteString(`4. "colorTheme": A suggested tailwind-compatible color class for the header background (e.g., "bg-blue-500", "bg-emerald-500", "bg-purple-500", "bg-orange-500", "bg-rose-500", "bg-slate-800").` + "\n")
	return sb.String()
}

// Truncate cuts content longer than MaxContent characters down to its first
// TruncatedContent characters followed by a marker.
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxContent {
		return content
	}
	return string(runes[:TruncatedContent]) + truncationMarker
}

// ParseEnrichment decodes the model's JSON response.
func ParseEnrichment(text string) (*cardsnap.Enrichment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, cardsnap.Errorf(cardsnap.EINTERNAL, "no response from gemini")
	}

	var out cardsnap.Enrichment
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, cardsnap.Errorf(cardsnap.EINTERNAL, "invalid gemini response: %v", err)
	}
	return &out, nil
}
