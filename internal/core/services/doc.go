// Package services implements the driving port interfaces.
// Services contain the core business logic: chunk ingestion, top-K
// similarity retrieval, and grounded question answering. They orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
