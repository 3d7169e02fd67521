package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/chunker"
	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// EmbedBatchSize is the number of chunks embedded per gateway call.
const EmbedBatchSize = 6

// SummaryChunkCount is how many leading chunks feed the upload summary.
const SummaryChunkCount = 10

// SummaryMaxLength bounds the upload summary in characters.
const SummaryMaxLength = 1200

// IngestService turns extracted document text into a persisted,
// queryable chunk collection.
//
// Embedding is strict: if any batch fails, the whole ingestion fails and
// nothing is written. A chunk stored with a zero vector would score near
// zero for every query and silently become unretrievable, which is worse
// than a visible error.
type IngestService struct {
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	llm      driven.LLMService
	docStore driven.DocumentStore
}

// NewIngestService creates an ingest service. llm is optional; without it
// documents are stored without an upload summary.
func NewIngestService(
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	docStore driven.DocumentStore,
) *IngestService {
	return &IngestService{
		chunker:  ch,
		embedder: embedder,
		llm:      llm,
		docStore: docStore,
	}
}

// Ingest chunks, embeds, and persists one document.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: missing title", domain.ErrInvalidInput)
	}

	documentID := req.DocumentID
	if documentID == "" {
		documentID = uuid.New().String()
	}

	logger.Section("Ingestion")
	logger.Debug("Document %s (%q), %d bytes of text", documentID, req.Title, len(req.Text))

	chunks := s.chunker.Split(documentID, req.Text)
	logger.Info("Chunked into %d chunks", len(chunks))

	if len(chunks) > 0 {
		vectors, err := s.embedChunks(ctx, chunks)
		if err != nil {
			return nil, err
		}
		if err := attachEmbeddings(chunks, vectors); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:         documentID,
		Title:      req.Title,
		ChunkCount: len(chunks),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	doc.Summary = s.summarise(ctx, chunks)

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	if err := s.docStore.ReplaceChunks(ctx, documentID, chunks); err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	logger.Info("Persisted document %s with %d chunks", documentID, len(chunks))

	return &driving.IngestResult{
		DocumentID: documentID,
		ChunkCount: len(chunks),
		Summary:    doc.Summary,
	}, nil
}

// embedChunks embeds chunk contents in batches, preserving chunk order.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))

	for start := 0; start < len(chunks); start += EmbedBatchSize {
		end := start + EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Content)
		}

		logger.Debug("Embedding batch [%d,%d) of %d chunks", start, end, len(chunks))
		batch, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks [%d,%d): %w: %w", start, end, domain.ErrEmbeddingUnavailable, err)
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// attachEmbeddings pairs chunks with their vectors positionally.
// A count mismatch reports domain.ErrInvalidInput before anything is
// written, so a bad gateway response never causes a partial save.
func attachEmbeddings(chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrInvalidInput, len(chunks), len(vectors))
	}
	for i := range chunks {
		if len(vectors[i]) == 0 {
			return fmt.Errorf("%w: empty vector for chunk %d", domain.ErrInvalidInput, i)
		}
		chunks[i].Embedding = vectors[i]
	}
	return nil
}

// summarise generates the upload-time summary from the leading chunks.
// Summarisation is advisory: failures are logged and ingestion proceeds.
func (s *IngestService) summarise(ctx context.Context, chunks []domain.Chunk) string {
	if s.llm == nil || len(chunks) == 0 {
		return ""
	}

	n := SummaryChunkCount
	if n > len(chunks) {
		n = len(chunks)
	}
	texts := make([]string, 0, n)
	for _, chunk := range chunks[:n] {
		texts = append(texts, chunk.Content)
	}

	summary, err := s.llm.Summarise(ctx, strings.Join(texts, "\n\n"), SummaryMaxLength)
	if err != nil {
		logger.Warn("Summary generation failed: %v", err)
		return ""
	}
	return strings.TrimSpace(summary)
}
