package extract

import "strings"

// Plaintext handles plain text files as-is.
type Plaintext struct{}

// NewPlaintext creates a plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Plaintext) Extensions() []string {
	return []string{".txt", ".text", ".log", ".csv"}
}

// Extract returns the content unchanged with a filename-derived title.
func (e *Plaintext) Extract(filename string, data []byte) (*Result, error) {
	return &Result{
		Title: titleFromFilename(filename),
		Text:  strings.TrimSpace(string(data)),
	}, nil
}
