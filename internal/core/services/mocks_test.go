package services

import (
	"context"

	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
// Embed returns vectors[calls] in order; batch calls consume in order too.
type mockEmbedder struct {
	vectors    [][]float32
	embedErr   error
	batchErr   error
	dimensions int
	calls      int
	batchSizes []int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vec := m.next()
	return vec, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	m.batchSizes = append(m.batchSizes, len(texts))
	out := make([][]float32, 0, len(texts))
	for range texts {
		out = append(out, m.next())
	}
	return out, nil
}

func (m *mockEmbedder) next() []float32 {
	if m.calls >= len(m.vectors) {
		return []float32{1, 0}
	}
	vec := m.vectors[m.calls]
	m.calls++
	return vec
}

func (m *mockEmbedder) Dimensions() int {
	if m.dimensions > 0 {
		return m.dimensions
	}
	return 2
}

func (m *mockEmbedder) ModelName() string { return "mock-embedder" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response     string
	summary      string
	generateErr  error
	summariseErr error
	prompts      []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.prompts = append(m.prompts, prompt)
	return m.response, nil
}

func (m *mockLLM) Summarise(_ context.Context, _ string, _ int) (string, error) {
	if m.summariseErr != nil {
		return "", m.summariseErr
	}
	return m.summary, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}
