package describe

import (
	"context"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}
	content := ""
	if i < len(f.responses) {
		content = f.responses[i]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

func newTestGenerator(c completer) *Generator {
	return &Generator{client: c, Model: "test", BatchSize: 10, MaxRetries: 2}
}

func TestGenerateAllMapsByName(t *testing.T) {
	fake := &fakeCompleter{
		responses: []string{`{"Чайник Acme": "Надёжный чайник.", "Тостер Acme": "Быстрый тостер."}`},
	}
	g := newTestGenerator(fake)

	out, stats := g.GenerateAll(context.Background(), []string{"Чайник Acme", "Тостер Acme"})
	if stats.Generated != 2 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if out["Чайник Acme"] != "Надёжный чайник." {
		t.Fatalf("unexpected description %q", out["Чайник Acme"])
	}
}

func TestGenerateAllHandlesMarkdownFences(t *testing.T) {
	fake := &fakeCompleter{
		responses: []string{"```json\n{\"Widget\": \"A fine widget.\"}\n```"},
	}
	g := newTestGenerator(fake)

	out, stats := g.GenerateAll(context.Background(), []string{"Widget"})
	if stats.Generated != 1 || out["Widget"] != "A fine widget." {
		t.Fatalf("fenced JSON not parsed: %+v / %v", stats, out)
	}
}

func TestGenerateAllRetriesOnRateLimit(t *testing.T) {
	fake := &fakeCompleter{
		errs:      []error{&openai.APIError{HTTPStatusCode: 429}},
		responses: []string{"", `{"Widget": "Still made it."}`},
	}
	g := newTestGenerator(fake)

	out, stats := g.GenerateAll(context.Background(), []string{"Widget"})
	if stats.Generated != 1 || out["Widget"] != "Still made it." {
		t.Fatalf("expected success after retry, got %+v / %v", stats, out)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", fake.calls)
	}
}

func TestGenerateAllGivesUpOnClientError(t *testing.T) {
	fake := &fakeCompleter{
		errs: []error{&openai.APIError{HTTPStatusCode: 400}},
	}
	g := newTestGenerator(fake)

	out, stats := g.GenerateAll(context.Background(), []string{"Widget"})
	if stats.Failed != 1 || len(out) != 0 {
		t.Fatalf("client errors must not be retried, got %+v / %v", stats, out)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 call, got %d", fake.calls)
	}
}

func TestMatchDescriptionFuzzy(t *testing.T) {
	descs := map[string]string{
		"Чайник электрический Acme X1": "Описание чайника.",
	}
	d, ok := matchDescription("Acme Чайник электрический X1", descs)
	if !ok || d != "Описание чайника." {
		t.Fatalf("fuzzy match failed: %q %v", d, ok)
	}

	if _, ok := matchDescription("Совсем другой товар", descs); ok {
		t.Fatal("unrelated names must not match")
	}
}

type stoppingCompleter struct {
	inner fakeCompleter
	g     *Generator
}

func (s *stoppingCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	defer s.g.RequestStop()
	return s.inner.CreateChatCompletion(ctx, req)
}

func TestStopBetweenBatches(t *testing.T) {
	sc := &stoppingCompleter{
		inner: fakeCompleter{responses: []string{`{"A": "a"}`, `{"B": "b"}`}},
	}
	g := newTestGenerator(sc)
	g.BatchSize = 1
	sc.g = g

	out, stats := g.GenerateAll(context.Background(), []string{"A", "B"})
	if out["A"] != "a" {
		t.Fatalf("first batch must complete, got %v", out)
	}
	if stats.Batches != 1 || sc.inner.calls != 1 {
		t.Fatalf("expected exactly one batch, got %+v (%d calls)", stats, sc.inner.calls)
	}
}
