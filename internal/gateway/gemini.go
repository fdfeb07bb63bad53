package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"

	"qsdesk/internal/domain"
)

const defaultModel = "gemini-3-flash-preview"

// Gemini is the production Analyst backed by the Google Gemini API. The
// underlying client is constructed lazily on first use and cached for the
// process lifetime. A missing API key is tolerated: every call then degrades
// to its fallback value instead of blocking startup.
type Gemini struct {
	apiKey string
	model  string
	rows   []domain.SpreadsheetRow
	logger *zap.Logger

	clientOnce sync.Once
	client     *genai.Client
	clientErr  error

	// Identical concurrent lookups share one in-flight request.
	flight singleflight.Group
}

// Option configures a Gemini analyst.
type Option func(*Gemini)

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(g *Gemini) {
		if strings.TrimSpace(model) != "" {
			g.model = model
		}
	}
}

// WithLogger attaches a logger; a nil logger is replaced with a Nop.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gemini) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGemini builds the analyst over the fixed reference dataset. An empty
// apiKey is accepted; it is reported once as a warning and every call fails
// safely afterwards.
func NewGemini(apiKey string, rows []domain.SpreadsheetRow, opts ...Option) *Gemini {
	g := &Gemini{
		apiKey: strings.TrimSpace(apiKey),
		model:  defaultModel,
		rows:   rows,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.apiKey == "" {
		g.logger.Warn("gemini api key not configured; AI lookups and narratives will use fallback values")
	}
	return g
}

func (g *Gemini) lazyClient(ctx context.Context) (*genai.Client, error) {
	g.clientOnce.Do(func() {
		if g.apiKey == "" {
			g.clientErr = fmt.Errorf("api key not configured")
			return
		}
		g.client, g.clientErr = genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	})
	return g.client, g.clientErr
}

// generate performs one completion. jsonReply requests a JSON-formatted
// response body. No retries: per the error-handling policy a failed call is
// converted to a fallback by the caller, never reattempted.
func (g *Gemini) generate(ctx context.Context, prompt string, jsonReply bool) (string, error) {
	client, err := g.lazyClient(ctx)
	if err != nil {
		return "", err
	}

	var cfg *genai.GenerateContentConfig
	if jsonReply {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return text, nil
}

// ResolveQuery finds the spreadsheet row best matching the free-text query.
// Transport failure, malformed JSON, and empty replies all collapse to
// NoMatch; the method never returns an error.
func (g *Gemini) ResolveQuery(ctx context.Context, query string) RowMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return NoMatch()
	}

	result, err, _ := g.flight.Do(query, func() (interface{}, error) {
		reply, err := g.generate(ctx, buildLookupPrompt(query, g.rows), true)
		if err != nil {
			return nil, err
		}
		return parseMatchReply(reply, g.rows), nil
	})
	if err != nil {
		g.logger.Warn("row lookup failed", zap.String("query", query), zap.Error(err))
		return NoMatch()
	}

	match := result.(RowMatch)
	g.logger.Info("row lookup completed",
		zap.String("query", query),
		zap.String("row_id", match.RowID),
	)
	return match
}

// SummarizeLog drafts the claim narrative from the audit trail. Always returns
// displayable text: the model's reply, or a fixed fallback on any failure.
func (g *Gemini) SummarizeLog(ctx context.Context, entries []domain.LogicLogEntry) string {
	if len(entries) == 0 {
		return EmptyReplyNarrative
	}

	reply, err := g.generate(ctx, buildNarrativePrompt(entries), false)
	if err != nil {
		g.logger.Warn("narrative generation failed", zap.Int("entries", len(entries)), zap.Error(err))
		return FallbackNarrative
	}
	g.logger.Info("narrative generated", zap.Int("entries", len(entries)), zap.Int("length", len(reply)))
	return reply
}
