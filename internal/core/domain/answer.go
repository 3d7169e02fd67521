package domain

// Answer is the result of a grounded question against a single document.
type Answer struct {
	// Text is the chat model's answer, constrained to the supplied context.
	Text string

	// Sources are the chunks the answer was grounded on, in ranked order.
	Sources []ScoredChunk
}
