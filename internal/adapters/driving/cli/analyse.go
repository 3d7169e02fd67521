package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

var analyseJSON bool

var analyseCmd = &cobra.Command{
	Use:   "analyse [doc-id]",
	Short: "Produce a structured plain-language report for a document",
	Long: `Reads the whole document and produces a structured report: summary,
key terms, obligations, costs, risks, red flags, questions to ask,
and negotiation suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyse,
}

func init() {
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	report, err := analysisService.Analyse(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to analyse document: %w", err)
	}

	if analyseJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printSection(cmd, "Summary", report.Summary)
	printSection(cmd, "Key terms", report.KeyTerms)
	printSection(cmd, "Your obligations", report.Obligations.You)
	printSection(cmd, "Other party's obligations", report.Obligations.OtherParty)
	printSection(cmd, "Costs and payments", report.CostsAndPayments)
	printRisks(cmd, report.Risks)
	printSection(cmd, "Red flags", report.RedFlags)
	printSection(cmd, "Questions to ask", report.QuestionsToAsk)
	printSection(cmd, "Negotiation suggestions", report.NegotiationSuggestions)
	printDecisionAssist(cmd, report.DecisionAssist)

	return nil
}

// printSection prints a titled bullet list, skipping empty sections.
func printSection(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", item)
	}
	cmd.Println()
}

func printRisks(cmd *cobra.Command, risks []domain.Risk) {
	if len(risks) == 0 {
		return
	}
	cmd.Println("Risks:")
	for _, risk := range risks {
		cmd.Printf("  - %s\n", risk.Title)
		if risk.WhyItMatters != "" {
			cmd.Printf("    Why it matters: %s\n", risk.WhyItMatters)
		}
		for _, m := range risk.Mitigations {
			cmd.Printf("    Mitigation: %s\n", m)
		}
	}
	cmd.Println()
}

func printDecisionAssist(cmd *cobra.Command, da domain.DecisionAssist) {
	if len(da.Pros) == 0 && len(da.Cons) == 0 && da.OverallTake == "" {
		return
	}
	cmd.Println("Decision assist:")
	for _, p := range da.Pros {
		cmd.Printf("  + %s\n", p)
	}
	for _, c := range da.Cons {
		cmd.Printf("  - %s\n", c)
	}
	if da.OverallTake != "" {
		cmd.Printf("  Overall: %s\n", da.OverallTake)
	}
}
