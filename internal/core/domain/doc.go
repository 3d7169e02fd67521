// Package domain defines the core business entities for PlainBrief.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested legal document with metadata
//   - Chunk: The unit of embedding and retrieval within a document
//   - ScoredChunk: A chunk ranked against a query vector
//   - Answer: A grounded answer with its source chunks
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
