package driving

import (
	"context"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// AnalysisService produces a structured plain-language report for one
// document.
type AnalysisService interface {
	// Analyse reads the document text and prompts the chat model for a
	// structured report covering summary, key terms, obligations, costs,
	// risks, red flags, questions to ask, and negotiation suggestions.
	Analyse(ctx context.Context, documentID string) (*domain.Analysis, error)
}
