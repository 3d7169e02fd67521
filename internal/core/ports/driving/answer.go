package driving

import (
	"context"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

// AnswerService answers natural-language questions against one document.
type AnswerService interface {
	// Ask embeds the query, retrieves the top-matching chunks for the
	// document, and prompts the chat model to answer strictly from them.
	Ask(ctx context.Context, documentID, query string) (*domain.Answer, error)
}
