package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Generation settings for grounded answers. Low temperature keeps the
// model close to the supplied context.
const (
	answerMaxTokens   = 1024
	answerTemperature = 0.1
)

// defaultAnswerPrompt grounds the chat model to the retrieved context.
// Expects two placeholders: context, then question.
const defaultAnswerPrompt = `You are a legal assistant helping non-lawyers understand rental agreements, loan contracts, terms of service, and other legal documents.
Using only the context below, answer the question in simple, practical language. If the context does not contain the answer, say so instead of guessing.

CONTEXT:
%s

QUESTION:
%s

Answer:`

// AnswerService answers questions against a single document by embedding
// the query, retrieving the top-matching chunks, and prompting the chat
// model to answer strictly from them.
type AnswerService struct {
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	retrieval   *RetrievalService
	promptStore driven.PromptStore
	topK        int
}

// NewAnswerService creates an answer service. promptStore is optional;
// without it the embedded default prompt is used.
func NewAnswerService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	retrieval *RetrievalService,
) *AnswerService {
	return &AnswerService{
		embedder:  embedder,
		llm:       llm,
		retrieval: retrieval,
		topK:      DefaultTopK,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnswerService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// SetTopK overrides how many chunks ground each answer.
func (s *AnswerService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// Ask answers a natural-language question against one document.
//
// Embedding gateway failures wrap domain.ErrEmbeddingUnavailable and
// chat gateway failures wrap domain.ErrLLMUnavailable, so callers can
// classify them without inspecting provider error types. Nothing is
// retried here; retries belong to the caller. A document without stored
// chunks reports domain.ErrNotFound rather than answering from an empty
// context.
func (s *AnswerService) Ask(ctx context.Context, documentID, query string) (*domain.Answer, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	logger.Section("Question Answering")
	logger.Debug("Document %s, query %q", documentID, query)

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(queryVector) == 0 {
		// An empty vector would rank every chunk at zero; surface it
		// instead of returning arbitrary results.
		return nil, fmt.Errorf("embed query: %w: gateway returned no vector", domain.ErrEmbeddingUnavailable)
	}
	logger.Debug("Query embedding: %d dimensions", len(queryVector))

	sources, err := s.retrieval.TopKSimilar(ctx, documentID, queryVector, s.topK)
	if err != nil {
		return nil, err
	}
	logger.Info("Retrieved %d source chunks", len(sources))

	prompt := fmt.Sprintf(s.answerPrompt(), buildContext(sources), query)

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w: %w", domain.ErrLLMUnavailable, err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: sources,
	}, nil
}

// buildContext concatenates the retrieved chunk texts in ranked order,
// separated by a paragraph break.
func buildContext(sources []domain.ScoredChunk) string {
	texts := make([]string, 0, len(sources))
	for _, src := range sources {
		texts = append(texts, strings.TrimSpace(src.Content))
	}
	return strings.Join(texts, "\n\n")
}

// answerPrompt loads the grounding prompt template, falling back to the
// embedded default.
func (s *AnswerService) answerPrompt() string {
	if s.promptStore == nil {
		return defaultAnswerPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptAnswer)
	if err != nil || prompt == "" {
		logger.Warn("Answer prompt unavailable, using default: %v", err)
		return defaultAnswerPrompt
	}
	return prompt
}
