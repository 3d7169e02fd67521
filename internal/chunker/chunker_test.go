package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		assert.Equal(t, DefaultChunkSize, c.chunkSize)
		assert.Equal(t, DefaultOverlap, c.overlap)
		assert.Equal(t, DefaultMinLength, c.minLength)
		assert.Equal(t, DefaultMaxChunks, c.maxChunks)
	})

	t.Run("custom options", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(100), WithMinLength(10), WithMaxChunks(50))
		assert.Equal(t, 500, c.chunkSize)
		assert.Equal(t, 100, c.overlap)
		assert.Equal(t, 10, c.minLength)
		assert.Equal(t, 50, c.maxChunks)
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		assert.Less(t, c.overlap, c.chunkSize, "overlap should be reduced when it exceeds chunk size")
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1), WithMaxChunks(0))
		assert.Equal(t, DefaultChunkSize, c.chunkSize)
		assert.Equal(t, DefaultOverlap, c.overlap)
		assert.Equal(t, DefaultMaxChunks, c.maxChunks)
	})
}

// collect materialises the window sequence into parallel offset and
// content slices.
func collect(c *Chunker, text string) ([]int, []string) {
	var offsets []int
	var windows []string
	for start, w := range c.Windows(text) {
		offsets = append(offsets, start)
		windows = append(windows, w)
	}
	return offsets, windows
}

func TestWindows_EmptyText(t *testing.T) {
	c := New()
	_, got := collect(c, "")
	assert.Empty(t, got)
}

func TestWindows_ShortText(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20), WithMinLength(1))
	text := "This is a small piece of content."

	offsets, got := collect(c, text)
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0])
	assert.Equal(t, 0, offsets[0])
}

func TestWindows_OverlapScenario(t *testing.T) {
	// 1000 bytes with chunkSize=800 and overlap=100 must produce exactly
	// [0,800) and [700,1000).
	c := New(WithChunkSize(800), WithOverlap(100))
	text := strings.Repeat("a", 1000)

	offsets, got := collect(c, text)
	require.Len(t, got, 2)
	assert.Equal(t, []int{0, 700}, offsets)
	assert.Equal(t, text[0:800], got[0])
	assert.Equal(t, text[700:1000], got[1])
}

func TestWindows_ZeroOverlap(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0), WithMinLength(1))
	text := strings.Repeat("b", 35)

	offsets, got := collect(c, text)
	require.Len(t, got, 4)
	assert.Equal(t, []int{0, 10, 20, 30}, offsets)
	assert.Equal(t, text, strings.Join(got, ""), "disjoint windows should reconstruct the text")
}

func TestWindows_OffsetReconstruction(t *testing.T) {
	// Appending the non-overlapping suffix of each window, located by its
	// offset, must reconstruct the original text.
	c := New(WithChunkSize(100), WithOverlap(30), WithMinLength(1))
	text := strings.Repeat("The tenant shall pay rent on the first of each month. ", 20)

	offsets, got := collect(c, text)
	require.Greater(t, len(got), 1)

	var sb strings.Builder
	covered := 0
	for i, w := range got {
		assert.Equal(t, text[offsets[i]:offsets[i]+len(w)], w, "window %d must match its offset span", i)
		sb.WriteString(w[covered-offsets[i]:])
		covered = offsets[i] + len(w)
	}
	assert.Equal(t, text, sb.String())
}

func TestWindows_Idempotent(t *testing.T) {
	c := New(WithChunkSize(120), WithOverlap(40), WithMinLength(1))
	text := strings.Repeat("governing law and jurisdiction clauses apply here ", 30)

	firstOffsets, first := collect(c, text)
	secondOffsets, second := collect(c, text)
	assert.Equal(t, first, second)
	assert.Equal(t, firstOffsets, secondOffsets)
}

func TestWindows_MinLengthFilter(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(0), WithMinLength(40))
	// Second window is whitespace and must be dropped.
	text := strings.Repeat("x", 50) + strings.Repeat(" ", 50) + strings.Repeat("y", 50)

	offsets, got := collect(c, text)
	require.Len(t, got, 2)
	// The offsets expose the gap the dropped window leaves behind.
	assert.Equal(t, []int{0, 100}, offsets)
}

func TestWindows_Cap(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0), WithMinLength(1), WithMaxChunks(3))
	text := strings.Repeat("z", 100)

	_, got := collect(c, text)
	assert.Len(t, got, 3)
}

func TestWindows_LazyStop(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0), WithMinLength(1))
	text := strings.Repeat("q", 1000)

	count := 0
	for range c.Windows(text) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count, "iteration should stop early")
}

func TestSplit(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20), WithMinLength(1))
	text := strings.Repeat("x", 250)

	chunks := c.Split("doc-1", text)
	require.Greater(t, len(chunks), 1)

	seenIDs := make(map[string]bool)
	for i, chunk := range chunks {
		assert.Equal(t, "doc-1", chunk.DocumentID)
		assert.Equal(t, i, chunk.Position, "positions must be contiguous")
		assert.Equal(t, text[chunk.Start:chunk.Start+len(chunk.Content)], chunk.Content,
			"chunk %d content must match its recorded offset", i)
		assert.False(t, seenIDs[chunk.ID], "duplicate chunk ID: %s", chunk.ID)
		seenIDs[chunk.ID] = true
	}
	assert.Equal(t, 0, chunks[0].Start)
}

func TestSplit_EmptyText(t *testing.T) {
	c := New()
	assert.Empty(t, c.Split("doc-1", ""))
}
