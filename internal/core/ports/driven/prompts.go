package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAnswer grounds the chat model to the retrieved context.
	// The template expects %s (context) and %s (question) placeholders.
	PromptAnswer = "answer"

	// PromptSummarise creates plain-language summaries of document content.
	// The template expects a %s (content) placeholder.
	PromptSummarise = "summarise"

	// PromptAnalyse produces the structured document analysis report.
	// The template expects a %s (document text) placeholder and must ask
	// the model for a JSON object.
	PromptAnalyse = "analyse"
)
