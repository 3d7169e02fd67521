// Package chunker splits document text into overlapping fixed-size windows.
package chunker

import (
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// DefaultChunkSize is the default number of bytes per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping bytes between
// consecutive chunks. Overlap keeps context that would otherwise be
// lost when a clause spans a chunk boundary.
const DefaultOverlap = 200

// DefaultMinLength is the minimum trimmed length for a chunk to be kept.
// Near-empty fragments add retrieval noise without informational value.
const DefaultMinLength = 40

// DefaultMaxChunks caps the number of chunks per document to bound
// embedding cost for pathologically large documents.
const DefaultMaxChunks = 200

// Chunker produces overlapping windows of document text.
type Chunker struct {
	chunkSize int
	overlap   int
	minLength int
	maxChunks int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in bytes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// WithMinLength sets the minimum trimmed window length to keep.
func WithMinLength(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.minLength = n
		}
	}
}

// WithMaxChunks caps the number of windows emitted per document.
func WithMaxChunks(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChunks = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
		minLength: DefaultMinLength,
		maxChunks: DefaultMaxChunks,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay below the chunk size or the window never advances
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Windows returns a lazy, restartable sequence of (offset, window) pairs.
//
// Each window spans [start, min(start+chunkSize, len(text))). After a
// window ends at e, the next starts at e-overlap, clamped to 0. The
// sequence ends when a window reaches the end of the text, so the final
// window may be shorter. Windows whose trimmed content is shorter than
// the minimum length are skipped, and at most maxChunks windows are
// emitted; anything beyond the cap is dropped, not deferred.
//
// Offsets are plain byte offsets; the same text always yields the same
// sequence.
func (c *Chunker) Windows(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		emitted := 0
		start := 0

		for start < len(text) {
			end := start + c.chunkSize
			if end > len(text) {
				end = len(text)
			}

			window := text[start:end]
			trimmed := strings.TrimSpace(window)
			if trimmed != "" && len(trimmed) >= c.minLength {
				if emitted >= c.maxChunks {
					return
				}
				if !yield(start, window) {
					return
				}
				emitted++
			}

			if end == len(text) {
				return
			}

			start = end - c.overlap
			if start < 0 {
				start = 0
			}
		}
	}
}

// Split materialises the windows of text into chunks for documentID.
// Positions are contiguous from 0 across the kept windows; each chunk
// also records its byte offset in text.
func (c *Chunker) Split(documentID, text string) []domain.Chunk {
	estimated := len(text)/(c.chunkSize-c.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start, window := range c.Windows(text) {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Content:    window,
			Position:   len(chunks),
			Start:      start,
		})
	}

	return chunks
}
