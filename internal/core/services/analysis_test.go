package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plainbrief/plainbrief/internal/adapters/driven/storage/memory"
	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
)

const wellFormedReport = `{
	"summary": ["A twelve month lease.", "Rent is due monthly."],
	"key_terms": ["security deposit", "notice period"],
	"obligations": {"you": ["pay rent"], "other_party": ["maintain the property"]},
	"costs_and_payments": ["rent 1200/month", "deposit 2400"],
	"risks": [{"title": "Automatic renewal", "why_it_matters": "You may be locked in.", "mitigations": ["diarise the notice date"]}],
	"red_flags": ["landlord may enter without notice"],
	"questions_to_ask": ["Is the deposit held in a protection scheme?"],
	"negotiation_suggestions": ["ask to cap the late fee"],
	"decision_assist": {"pros": ["standard terms"], "cons": ["strict late fees"], "overall_take": "Appears workable with two changes."}
}`

func analysisFixture(t *testing.T, text, reply string) (*AnalysisService, *mockLLM, string) {
	t.Helper()
	store, result := ingestFixture(t, text)
	llm := &mockLLM{response: reply}
	return NewAnalysisService(llm, store), llm, result.DocumentID
}

func TestAnalyse(t *testing.T) {
	svc, llm, docID := analysisFixture(t, strings.Repeat("lease terms ", 30), wellFormedReport)

	report, err := svc.Analyse(context.Background(), docID)
	require.NoError(t, err)

	assert.Equal(t, []string{"A twelve month lease.", "Rent is due monthly."}, report.Summary)
	assert.Equal(t, []string{"security deposit", "notice period"}, report.KeyTerms)
	assert.Equal(t, []string{"pay rent"}, report.Obligations.You)
	assert.Equal(t, []string{"maintain the property"}, report.Obligations.OtherParty)
	assert.Equal(t, []string{"rent 1200/month", "deposit 2400"}, report.CostsAndPayments)
	require.Len(t, report.Risks, 1)
	assert.Equal(t, "Automatic renewal", report.Risks[0].Title)
	assert.Equal(t, "You may be locked in.", report.Risks[0].WhyItMatters)
	assert.Equal(t, []string{"diarise the notice date"}, report.Risks[0].Mitigations)
	assert.Equal(t, []string{"landlord may enter without notice"}, report.RedFlags)
	assert.Equal(t, []string{"Is the deposit held in a protection scheme?"}, report.QuestionsToAsk)
	assert.Equal(t, []string{"ask to cap the late fee"}, report.NegotiationSuggestions)
	assert.Equal(t, "Appears workable with two changes.", report.DecisionAssist.OverallTake)

	// The prompt carries the document text.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "lease terms")
}

func TestAnalyse_CoercesLooseShapes(t *testing.T) {
	// Models routinely bend the asked-for shapes: strings where lists were
	// asked for, list items wrapped in small objects, obligations as a
	// flat list. All of these must still produce a usable report.
	reply := `{
		"summary": "One paragraph instead of a list.",
		"key_terms": [{"term": "indemnity"}, "severability"],
		"obligations": ["pay on time", "keep records"],
		"costs_and_payments": {"setup_fee": "100", "monthly": "50"},
		"risks": ["unlimited liability", {"risk": "unilateral changes", "why_it_matters": "Terms can shift."}],
		"red_flags": [{"flag": "no exit clause"}],
		"decision_assist": "Could be acceptable for short engagements."
	}`
	svc, _, docID := analysisFixture(t, strings.Repeat("contract body ", 20), reply)

	report, err := svc.Analyse(context.Background(), docID)
	require.NoError(t, err)

	assert.Equal(t, []string{"One paragraph instead of a list."}, report.Summary)
	assert.Equal(t, []string{"indemnity", "severability"}, report.KeyTerms)
	assert.Equal(t, []string{"pay on time", "keep records"}, report.Obligations.You)
	assert.Empty(t, report.Obligations.OtherParty)
	assert.Equal(t, []string{"monthly: 50", "setup_fee: 100"}, report.CostsAndPayments)
	require.Len(t, report.Risks, 2)
	assert.Equal(t, "unlimited liability", report.Risks[0].Title)
	assert.Equal(t, "unilateral changes", report.Risks[1].Title)
	assert.Equal(t, "Terms can shift.", report.Risks[1].WhyItMatters)
	assert.Equal(t, []string{"no exit clause"}, report.RedFlags)
	assert.Equal(t, "Could be acceptable for short engagements.", report.DecisionAssist.OverallTake)
}

func TestAnalyse_JSONWrappedInProse(t *testing.T) {
	reply := "Here is the report:\n```json\n" + `{"summary": ["Short."]}` + "\n```\nLet me know if you need more."
	svc, _, docID := analysisFixture(t, strings.Repeat("agreement text ", 20), reply)

	report, err := svc.Analyse(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Short."}, report.Summary)
}

func TestAnalyse_NotJSON(t *testing.T) {
	svc, _, docID := analysisFixture(t, strings.Repeat("agreement text ", 20), "I cannot produce a report.")

	_, err := svc.Analyse(context.Background(), docID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not return JSON")
}

func TestAnalyse_DocumentNotFound(t *testing.T) {
	svc := NewAnalysisService(&mockLLM{response: wellFormedReport}, memory.NewDocumentStore())

	_, err := svc.Analyse(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyse_DocumentWithoutChunks(t *testing.T) {
	store := memory.NewDocumentStore()
	now := time.Now().UTC()
	require.NoError(t, store.SaveDocument(context.Background(), &domain.Document{
		ID: "doc-1", Title: "Empty", CreatedAt: now, UpdatedAt: now,
	}))
	svc := NewAnalysisService(&mockLLM{response: wellFormedReport}, store)

	_, err := svc.Analyse(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyse_NilLLM(t *testing.T) {
	store, result := ingestFixture(t, "some document text")
	svc := NewAnalysisService(nil, store)

	_, err := svc.Analyse(context.Background(), result.DocumentID)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAnalyse_GenerateFailure(t *testing.T) {
	store, result := ingestFixture(t, "some document text")
	svc := NewAnalysisService(&mockLLM{generateErr: errors.New("model timeout")}, store)

	_, err := svc.Analyse(context.Background(), result.DocumentID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable, "gateway failures must be classifiable")
	assert.Contains(t, err.Error(), "model timeout")
}

func TestAnalyse_TruncatesLongDocuments(t *testing.T) {
	store := memory.NewDocumentStore()
	now := time.Now().UTC()
	ctx := context.Background()
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		ID: "doc-1", Title: "Huge", ChunkCount: 1, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.ReplaceChunks(ctx, "doc-1", []domain.Chunk{{
		ID: "c1", DocumentID: "doc-1", Content: strings.Repeat("a", 25000),
		Position: 0, Embedding: []float32{1, 0},
	}}))

	llm := &mockLLM{response: wellFormedReport}
	svc := NewAnalysisService(llm, store)
	// A template without the marker byte, so the count below measures only
	// the document text.
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAnalyse: "JSON report for this document: %s",
	}})

	_, err := svc.Analyse(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, analysisMaxInputBytes, strings.Count(llm.prompts[0], "a"))
}

func TestAnalyse_CustomPrompt(t *testing.T) {
	svc, llm, docID := analysisFixture(t, strings.Repeat("agreement text ", 20), wellFormedReport)
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAnalyse: "Report on this in JSON: %s",
	}})

	_, err := svc.Analyse(context.Background(), docID)
	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.True(t, strings.HasPrefix(llm.prompts[0], "Report on this in JSON:"))
}
