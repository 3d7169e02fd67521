package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages ingested documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{
		docStore: docStore,
	}
}

// List returns all documents ordered by creation time.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent reassembles the document text from its chunk collection
// using each chunk's recorded byte offset. Where consecutive stored
// chunks overlap, the duplicated prefix is skipped; where the chunk
// filter left a gap, the next chunk is appended whole. Text that only
// appeared in a filtered-out window is not recoverable.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("get chunks: %w", err)
	}

	return assembleContent(chunks), nil
}

// assembleContent stitches chunk contents back together by byte offset.
// Overlapping prefixes are skipped; after a gap the next chunk is
// appended whole.
func assembleContent(chunks []domain.Chunk) string {
	var builder strings.Builder
	covered := 0
	for _, chunk := range chunks {
		skip := covered - chunk.Start
		if skip < 0 {
			skip = 0
		}
		if skip > len(chunk.Content) {
			skip = len(chunk.Content)
		}
		builder.WriteString(chunk.Content[skip:])

		if end := chunk.Start + len(chunk.Content); end > covered {
			covered = end
		}
	}
	return builder.String()
}

// GetDetails returns metadata for display.
func (s *DocumentService) GetDetails(ctx context.Context, documentID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}

	return &driving.DocumentDetails{
		ID:         doc.ID,
		Title:      doc.Title,
		Summary:    doc.Summary,
		ChunkCount: len(chunks),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// Delete removes a document and its chunk collection.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}
