package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Generation settings for the analysis report. The report is longer
// than a chat answer, so it gets a bigger token budget.
const (
	analysisMaxInputBytes = 20000
	analysisMaxTokens     = 2048
	analysisTemperature   = 0.1
)

// defaultAnalysisPrompt asks the chat model for the structured report.
// Expects one placeholder: the document text.
const defaultAnalysisPrompt = `You are a legal clarity assistant. Your job is to explain legal documents in plain, neutral language, flag potentially risky clauses, and suggest practical, non-legal-advice steps the reader can take. Avoid definitive legal conclusions; use careful wording ("may", "could", "appears to"). Tailor explanations for a non-lawyer reader.

Document:
%s

Return a structured JSON object with these fields ONLY: summary, key_terms, obligations, costs_and_payments, risks, red_flags, questions_to_ask, negotiation_suggestions, decision_assist.`

// AnalysisService produces a structured plain-language report for one
// document by feeding the reassembled text to the chat model and
// normalising its JSON reply.
type AnalysisService struct {
	llm         driven.LLMService
	docStore    driven.DocumentStore
	promptStore driven.PromptStore
}

// NewAnalysisService creates an analysis service. promptStore is
// optional; without it the embedded default prompt is used.
func NewAnalysisService(llm driven.LLMService, docStore driven.DocumentStore) *AnalysisService {
	return &AnalysisService{
		llm:      llm,
		docStore: docStore,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnalysisService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Analyse reads the document text and prompts the chat model for the
// structured report.
//
// Chat gateway failures wrap domain.ErrLLMUnavailable. The model's JSON
// is normalised field by field: models routinely return a string where
// a list was asked for, or wrap list items in small objects, and a
// report with a few coerced fields beats a hard parse failure. A
// document without stored chunks reports domain.ErrNotFound.
func (s *AnalysisService) Analyse(ctx context.Context, documentID string) (*domain.Analysis, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document has no stored text", domain.ErrNotFound)
	}

	logger.Section("Document Analysis")

	text := assembleContent(chunks)
	if len(text) > analysisMaxInputBytes {
		text = text[:analysisMaxInputBytes]
	}
	logger.Debug("Document %s, %d bytes of text for analysis", documentID, len(text))

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(s.analysisPrompt(), text), driven.GenerateOptions{
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w: %w", domain.ErrLLMUnavailable, err)
	}

	report, err := parseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return report, nil
}

// analysisPrompt loads the report prompt template, falling back to the
// embedded default.
func (s *AnalysisService) analysisPrompt() string {
	if s.promptStore == nil {
		return defaultAnalysisPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptAnalyse)
	if err != nil || prompt == "" {
		logger.Warn("Analysis prompt unavailable, using default: %v", err)
		return defaultAnalysisPrompt
	}
	return prompt
}

// parseAnalysis decodes the model reply into a normalised report. If the
// reply is not bare JSON, the substring between the first '{' and the
// last '}' is tried before giving up, which tolerates models that wrap
// their JSON in prose or a code fence.
func parseAnalysis(raw string) (*domain.Analysis, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("model did not return JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
			return nil, fmt.Errorf("model did not return JSON: %w", err)
		}
	}

	return &domain.Analysis{
		Summary:                coerceStrings(fields["summary"]),
		KeyTerms:               coerceStrings(fields["key_terms"], "term"),
		Obligations:            coerceObligations(fields["obligations"]),
		CostsAndPayments:       coerceStrings(fields["costs_and_payments"], "total_estimated_cost"),
		Risks:                  coerceRisks(fields["risks"]),
		RedFlags:               coerceStrings(fields["red_flags"], "flag"),
		QuestionsToAsk:         coerceStrings(fields["questions_to_ask"]),
		NegotiationSuggestions: coerceStrings(fields["negotiation_suggestions"]),
		DecisionAssist:         coerceDecisionAssist(fields["decision_assist"]),
	}, nil
}

// coerceStrings normalises a field to a list of strings. A bare string
// becomes a one-element list. List items that are objects contribute
// the value under the first matching key. An object becomes sorted
// "key: value" lines, which covers cost breakdowns returned as a map.
func coerceStrings(v any, keys ...string) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}
		}
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := coerceString(item, keys...); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, 0, len(names))
		for _, name := range names {
			if s := coerceString(t[name]); s != "" {
				out = append(out, fmt.Sprintf("%s: %s", name, s))
			}
		}
		return out
	default:
		if s := coerceString(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

// coerceString normalises one list item to a string.
func coerceString(v any, keys ...string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		for _, key := range keys {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// coerceObligations accepts either the asked-for {you, other_party}
// object or a flat list, which is attributed to the reader.
func coerceObligations(v any) domain.Obligations {
	switch t := v.(type) {
	case map[string]any:
		return domain.Obligations{
			You:        coerceStrings(t["you"]),
			OtherParty: coerceStrings(t["other_party"]),
		}
	case []any:
		return domain.Obligations{You: coerceStrings(t)}
	default:
		return domain.Obligations{}
	}
}

// coerceRisks normalises risk entries. Models return bare strings,
// {risk: ...} objects, or the full {title, why_it_matters, mitigations}
// shape.
func coerceRisks(v any) []domain.Risk {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	risks := make([]domain.Risk, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				risks = append(risks, domain.Risk{Title: s})
			}
		case map[string]any:
			title := coerceString(t, "title")
			if title == "" {
				title = coerceString(t, "risk")
			}
			if title == "" {
				continue
			}
			risks = append(risks, domain.Risk{
				Title:        title,
				WhyItMatters: coerceString(t["why_it_matters"]),
				Mitigations:  coerceStrings(t["mitigations"]),
			})
		}
	}
	return risks
}

// coerceDecisionAssist accepts the asked-for object, a bare string
// (treated as the overall take), or a list (treated as pros).
func coerceDecisionAssist(v any) domain.DecisionAssist {
	switch t := v.(type) {
	case map[string]any:
		return domain.DecisionAssist{
			Pros:        coerceStrings(t["pros"]),
			Cons:        coerceStrings(t["cons"]),
			OverallTake: coerceString(t["overall_take"]),
		}
	case string:
		return domain.DecisionAssist{OverallTake: strings.TrimSpace(t)}
	case []any:
		return domain.DecisionAssist{Pros: coerceStrings(t)}
	default:
		return domain.DecisionAssist{}
	}
}
