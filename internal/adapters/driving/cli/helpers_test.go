package cli

import (
	"context"
	"time"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
)

// Mock services for command tests.

type mockIngestService struct {
	result  *driving.IngestResult
	err     error
	lastReq driving.IngestRequest
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockAnswerService struct {
	answer       *domain.Answer
	err          error
	lastQuestion string
}

func (m *mockAnswerService) Ask(_ context.Context, _, question string) (*domain.Answer, error) {
	m.lastQuestion = question
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

type mockAnalysisService struct {
	report *domain.Analysis
	err    error
}

func (m *mockAnalysisService) Analyse(_ context.Context, _ string) (*domain.Analysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

type mockDocumentService struct {
	docs    []domain.Document
	content string
	err     error
	deleted []string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) GetContent(_ context.Context, id string) (string, error) {
	if _, err := m.Get(context.Background(), id); err != nil {
		return "", err
	}
	return m.content, nil
}

func (m *mockDocumentService) GetDetails(_ context.Context, id string) (*driving.DocumentDetails, error) {
	doc, err := m.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	return &driving.DocumentDetails{
		ID:         doc.ID,
		Title:      doc.Title,
		Summary:    doc.Summary,
		ChunkCount: doc.ChunkCount,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if _, err := m.Get(context.Background(), id); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// setupTestServices wires mock services into the package-level vars and
// returns a cleanup func restoring the previous wiring.
func setupTestServices() func() {
	oldIngest := ingestService
	oldAnswer := answerService
	oldDocument := documentService
	oldAnalysis := analysisService

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ingestService = &mockIngestService{
		result: &driving.IngestResult{DocumentID: "doc-1", ChunkCount: 3, Summary: "A test summary."},
	}
	answerService = &mockAnswerService{
		answer: &domain.Answer{
			Text: "The deposit is refundable within 30 days.",
			Sources: []domain.ScoredChunk{
				{Chunk: domain.Chunk{Content: "the deposit shall be refunded", Position: 2}, Score: 0.87},
			},
		},
	}
	documentService = &mockDocumentService{
		docs: []domain.Document{
			{ID: "doc-1", Title: "Test Document 1", Summary: "A lease.", ChunkCount: 3, CreatedAt: now, UpdatedAt: now},
			{ID: "doc-2", Title: "Test Document 2", ChunkCount: 5, CreatedAt: now, UpdatedAt: now},
		},
		content: "full document text",
	}
	analysisService = &mockAnalysisService{
		report: &domain.Analysis{
			Summary:  []string{"A twelve month lease."},
			KeyTerms: []string{"security deposit"},
			Obligations: domain.Obligations{
				You: []string{"pay rent on the first of each month"},
			},
			Risks:    []domain.Risk{{Title: "Automatic renewal", WhyItMatters: "You may be locked in."}},
			RedFlags: []string{"entry without notice"},
			DecisionAssist: domain.DecisionAssist{
				OverallTake: "Appears workable with two changes.",
			},
		},
	}

	return func() {
		ingestService = oldIngest
		answerService = oldAnswer
		documentService = oldDocument
		analysisService = oldAnalysis
	}
}
