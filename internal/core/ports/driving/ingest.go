package driving

import "context"

// IngestService turns raw document text into a queryable chunk collection.
type IngestService interface {
	// Ingest chunks the text, embeds every chunk, and persists the full
	// collection as one unit. Re-ingesting an existing document ID
	// replaces its whole collection.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}

// IngestRequest carries one document's extracted text into the pipeline.
type IngestRequest struct {
	// DocumentID is optional; a fresh UUID is assigned when empty.
	DocumentID string

	// Title is the human-readable document title.
	Title string

	// Text is the full extracted text of the document.
	Text string
}

// IngestResult reports what was persisted for an ingested document.
type IngestResult struct {
	// DocumentID identifies the stored document.
	DocumentID string

	// ChunkCount is the number of chunks embedded and persisted.
	ChunkCount int

	// Summary is the upload-time plain-language summary.
	// Empty when no LLM service is configured or summarisation failed.
	Summary string
}
