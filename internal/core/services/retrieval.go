package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// DefaultTopK is the number of chunks retrieved when k is unspecified.
const DefaultTopK = 5

// cosineEpsilon guards the denominator against all-zero vectors.
const cosineEpsilon = 1e-8

// RetrievalService answers nearest-neighbour queries over a document's
// stored chunks with an exhaustive cosine-similarity scan.
//
// Per-document chunk counts are capped by the chunker, so a linear scan
// stays cheap; an approximate index would only pay off for unbounded
// collections.
type RetrievalService struct {
	docStore driven.DocumentStore
}

// NewRetrievalService creates a retrieval service over the given store.
func NewRetrievalService(docStore driven.DocumentStore) *RetrievalService {
	return &RetrievalService{docStore: docStore}
}

// TopKSimilar returns the k stored chunks of documentID most similar to
// queryVector, in descending score order. Ties keep ascending chunk
// position, so identical inputs always rank identically. k <= 0 selects
// DefaultTopK; fewer than k stored chunks returns all of them.
//
// A document with no stored chunks reports domain.ErrNotFound. A stored
// embedding whose dimensionality differs from the query reports
// domain.ErrDimensionMismatch.
func (s *RetrievalService) TopKSimilar(
	ctx context.Context, documentID string, queryVector []float32, k int,
) ([]domain.ScoredChunk, error) {
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = DefaultTopK
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	logger.Debug("Scoring %d chunks for document %s", len(chunks), documentID)

	scored := make([]domain.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) != len(queryVector) {
			return nil, fmt.Errorf("chunk %d has %d dimensions, query has %d: %w",
				chunk.Position, len(chunk.Embedding), len(queryVector), domain.ErrDimensionMismatch)
		}
		scored = append(scored, domain.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(queryVector, chunk.Embedding),
		})
	}

	// Chunks arrive ordered by position, so a stable sort keeps ties
	// in ascending position order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}

	logger.Debug("Top score %.4f, cutoff score %.4f", scored[0].Score, scored[k-1].Score)

	return scored[:k], nil
}

// cosineSimilarity computes dot(a,b) / (|a|*|b| + eps) in a single pass.
// The epsilon keeps an all-zero vector at score 0 instead of dividing
// by zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}
