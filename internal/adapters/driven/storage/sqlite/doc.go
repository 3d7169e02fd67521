// Package sqlite provides the persistent document and chunk store.
//
// Embeddings are stored inline with their chunks as little-endian
// float32 blobs. Chunk collections are replaced in a single transaction,
// so under WAL mode a concurrent reader sees either the previous
// collection or the new one, never a partial mix.
package sqlite
