package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// A query against a document with no stored chunks reports this.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty query, a non-positive k, or mismatched chunk/vector counts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval require embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the chat service is not configured.
	// Question answering and summarisation are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrDimensionMismatch indicates two vectors of unequal length were
	// compared. Stored embeddings must match the query embedding model.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
