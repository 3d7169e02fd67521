// Package extract converts uploaded document files into plain text ready
// for chunking. Each supported format has an extractor that pulls out the
// readable text and a best-effort title.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// Result is the extracted text and title of a document file.
type Result struct {
	Title string
	Text  string
}

// Extractor converts one file format to plain text.
type Extractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract pulls the readable text out of the file content. filename
	// is used for title fallback only.
	Extract(filename string, data []byte) (*Result, error)
}

// Registry selects an extractor by file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a registry from the given extractors. Later
// extractors win on extension conflicts.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewPlaintext(),
		NewMarkdown(),
		NewHTML(),
		NewDocx(),
	)
}

// Supports reports whether files with the given extension can be extracted.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extensions returns all supported extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// ExtractFile extracts text from a file's content, choosing the extractor
// by the path's extension.
func (r *Registry) ExtractFile(path string, data []byte) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extractor, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}
	return extractor.Extract(filepath.Base(path), data)
}

// titleFromFilename derives a readable title from a file name.
func titleFromFilename(filename string) string {
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
