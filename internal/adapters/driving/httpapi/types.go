package httpapi

import (
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
)

// uploadRequest is the JSON body for POST /api/documents.
// File uploads use multipart/form-data instead.
type uploadRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// uploadResponse confirms an ingested document.
type uploadResponse struct {
	ID         string `json:"id"`
	ChunkCount int    `json:"chunk_count"`
	Summary    string `json:"summary,omitempty"`
}

// documentResponse is the JSON shape of a document.
type documentResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// chatRequest is the JSON body for POST /api/documents/{id}/chat.
type chatRequest struct {
	Question string `json:"question"`
}

// sourceResponse is one retrieved chunk backing an answer.
type sourceResponse struct {
	Position int     `json:"position"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// chatResponse is the answer with its supporting sources.
type chatResponse struct {
	Answer  string           `json:"answer"`
	Sources []sourceResponse `json:"sources"`
}

// analysisResponse is the structured report for a document.
type analysisResponse struct {
	Summary                []string               `json:"summary"`
	KeyTerms               []string               `json:"key_terms"`
	Obligations            obligationsResponse    `json:"obligations"`
	CostsAndPayments       []string               `json:"costs_and_payments"`
	Risks                  []riskResponse         `json:"risks"`
	RedFlags               []string               `json:"red_flags"`
	QuestionsToAsk         []string               `json:"questions_to_ask"`
	NegotiationSuggestions []string               `json:"negotiation_suggestions"`
	DecisionAssist         decisionAssistResponse `json:"decision_assist"`
}

// obligationsResponse splits obligations by party.
type obligationsResponse struct {
	You        []string `json:"you"`
	OtherParty []string `json:"other_party"`
}

// riskResponse is one potentially problematic clause.
type riskResponse struct {
	Title        string   `json:"title"`
	WhyItMatters string   `json:"why_it_matters"`
	Mitigations  []string `json:"mitigations"`
}

// decisionAssistResponse weighs the document overall.
type decisionAssistResponse struct {
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
	OverallTake string   `json:"overall_take"`
}

// errorResponse carries an error message.
type errorResponse struct {
	Error string `json:"error"`
}

// toDocumentResponse converts a domain document.
func toDocumentResponse(doc domain.Document) documentResponse {
	return documentResponse{
		ID:         doc.ID,
		Title:      doc.Title,
		Summary:    doc.Summary,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

// toChatResponse converts a domain answer.
func toChatResponse(answer *domain.Answer) chatResponse {
	sources := make([]sourceResponse, 0, len(answer.Sources))
	for _, src := range answer.Sources {
		sources = append(sources, sourceResponse{
			Position: src.Position,
			Content:  src.Content,
			Score:    src.Score,
		})
	}
	return chatResponse{
		Answer:  answer.Text,
		Sources: sources,
	}
}

// toAnalysisResponse converts a domain analysis report.
func toAnalysisResponse(report *domain.Analysis) analysisResponse {
	risks := make([]riskResponse, 0, len(report.Risks))
	for _, risk := range report.Risks {
		risks = append(risks, riskResponse{
			Title:        risk.Title,
			WhyItMatters: risk.WhyItMatters,
			Mitigations:  risk.Mitigations,
		})
	}
	return analysisResponse{
		Summary:  report.Summary,
		KeyTerms: report.KeyTerms,
		Obligations: obligationsResponse{
			You:        report.Obligations.You,
			OtherParty: report.Obligations.OtherParty,
		},
		CostsAndPayments:       report.CostsAndPayments,
		Risks:                  risks,
		RedFlags:               report.RedFlags,
		QuestionsToAsk:         report.QuestionsToAsk,
		NegotiationSuggestions: report.NegotiationSuggestions,
		DecisionAssist: decisionAssistResponse{
			Pros:        report.DecisionAssist.Pros,
			Cons:        report.DecisionAssist.Cons,
			OverallTake: report.DecisionAssist.OverallTake,
		},
	}
}

// toUploadResponse converts an ingest result.
func toUploadResponse(result *driving.IngestResult) uploadResponse {
	return uploadResponse{
		ID:         result.DocumentID,
		ChunkCount: result.ChunkCount,
		Summary:    result.Summary,
	}
}
