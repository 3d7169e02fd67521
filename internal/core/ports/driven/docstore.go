package driven

import (
	"context"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// DocumentStore persists documents and their chunk collections.
// Backed by SQLite; an in-memory implementation exists for tests.
type DocumentStore interface {
	// SaveDocument stores or updates a document's metadata.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// ReplaceChunks atomically replaces the full chunk collection for a
	// document. A concurrent reader observes either the previous set or
	// the new one, never a partial mix. Chunks must belong to documentID
	// and carry contiguous positions; violations report
	// domain.ErrInvalidInput without a partial write.
	ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Reports domain.ErrNotFound for unknown documents.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document ordered by position.
	// Returns an empty slice for unknown documents.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and its chunks.
	DeleteDocument(ctx context.Context, id string) error
}
