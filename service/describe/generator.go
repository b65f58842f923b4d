package describe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// completer is the slice of the OpenAI client the generator uses; tests
// substitute a fake.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Stats aggregates one generation run.
type Stats struct {
	Generated int
	Failed    int
	Batches   int
}

// Generator produces product descriptions in batches through the chat
// completion API. One request covers BatchSize product names and returns a
// JSON object keyed by name.
type Generator struct {
	client     completer
	Model      string
	BatchSize  int
	MaxRetries int
	Log        func(string)

	stop atomic.Bool
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{
		client:     openai.NewClient(apiKey),
		Model:      "gpt-4o-mini",
		BatchSize:  10,
		MaxRetries: 4,
	}
}

func (g *Generator) logf(format string, args ...interface{}) {
	if g.Log != nil {
		g.Log(fmt.Sprintf(format, args...))
	}
}

// RequestStop asks GenerateAll to return after the current batch.
func (g *Generator) RequestStop() {
	g.stop.Store(true)
}

// GenerateAll produces a description per product name and returns name→text.
// Names whose batch ultimately failed are counted in Stats.Failed and absent
// from the map.
func (g *Generator) GenerateAll(ctx context.Context, names []string) (map[string]string, Stats) {
	g.stop.Store(false)
	out := make(map[string]string, len(names))
	var stats Stats

	for start := 0; start < len(names); start += g.BatchSize {
		if g.stop.Load() || ctx.Err() != nil {
			break
		}
		end := start + g.BatchSize
		if end > len(names) {
			end = len(names)
		}
		batch := names[start:end]
		stats.Batches++

		descs, err := g.generateBatch(ctx, batch)
		if err != nil {
			g.logf("description batch failed: %v", err)
			stats.Failed += len(batch)
			continue
		}

		for _, name := range batch {
			if d, ok := matchDescription(name, descs); ok {
				out[name] = d
				stats.Generated++
			} else {
				g.logf("no description returned for %q", name)
				stats.Failed++
			}
		}
	}
	return out, stats
}

// generateBatch runs one completion with exponential backoff on rate limits
// and server errors.
func (g *Generator) generateBatch(ctx context.Context, names []string) (map[string]string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(names)},
		},
		Temperature: 0.7,
	}

	var lastErr error
	for attempt := 0; attempt <= g.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			g.logf("retrying description batch in %s (attempt %d/%d)", delay, attempt, g.MaxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			if retryable(err) {
				continue
			}
			return nil, err
		}
		if len(resp.Choices) == 0 {
			lastErr = errors.New("empty completion")
			continue
		}

		descs, err := parseCompletion(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = err
			continue
		}
		return descs, nil
	}
	return nil, fmt.Errorf("after %d attempts: %w", g.MaxRetries+1, lastErr)
}

func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	return errors.As(err, &reqErr)
}

func parseCompletion(content string) (map[string]string, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, errors.New("completion carries no JSON object")
	}
	var descs map[string]string
	if err := json.Unmarshal([]byte(raw), &descs); err != nil {
		return nil, fmt.Errorf("parse completion JSON: %w", err)
	}
	return descs, nil
}

// matchDescription finds the entry for a product name: exact match first, then
// case-insensitive, then the most similar key above a 0.5 overlap threshold
// (the model sometimes rewords or renumbers names).
func matchDescription(name string, descs map[string]string) (string, bool) {
	if d, ok := descs[name]; ok && d != "" {
		return d, true
	}
	for k, d := range descs {
		if strings.EqualFold(strings.TrimSpace(k), strings.TrimSpace(name)) && d != "" {
			return d, true
		}
	}

	bestScore := 0.5
	var best string
	for k, d := range descs {
		if d == "" {
			continue
		}
		if s := similarity(name, k); s > bestScore {
			bestScore = s
			best = d
		}
	}
	return best, best != ""
}
