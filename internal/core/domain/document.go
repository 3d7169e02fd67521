package domain

import "time"

// Document represents an ingested legal document.
// It is the canonical representation after text extraction.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, usually the upload filename.
	Title string

	// Summary is the plain-language summary generated at ingestion.
	// Empty when summarisation was unavailable.
	Summary string

	// ChunkCount is the number of chunks persisted for this document.
	ChunkCount int

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Chunk represents a bounded window of a document's text.
// Documents are split into overlapping chunks; each chunk is embedded
// and retrieved independently.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	// Positions are contiguous and start at 0.
	Position int

	// Start is the byte offset of this chunk's window in the original
	// text. Windows overlap, and filtered windows leave gaps, so offsets
	// are the only reliable way to stitch content back together.
	Start int

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}

// ScoredChunk is a chunk annotated with a similarity score against a
// query vector. Produced transiently during retrieval, never persisted.
type ScoredChunk struct {
	Chunk

	// Score is the cosine similarity against the query vector.
	Score float64
}
