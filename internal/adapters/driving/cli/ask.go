package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plainbrief/plainbrief/internal/core/domain"
)

var (
	askJSON    bool
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Retrieves the most relevant passages of the document and answers the
question in plain language, grounded in those passages.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVarP(&askSources, "sources", "s", false, "show the passages the answer is based on")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	docID := args[0]
	question := strings.Join(args[1:], " ")
	ctx := context.Background()

	answer, err := answerService.Ask(ctx, docID, question)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}

	cmd.Println(answer.Text)

	if askSources && len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for i := range answer.Sources {
			src := &answer.Sources[i]
			cmd.Printf("  [%d] chunk %d (%.2f)\n", i+1, src.Position, src.Score)
			cmd.Printf("      %s\n", snippet(src.Content, 120))
		}
	}

	return nil
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// snippet returns the first maxLen bytes of s on a single line.
func snippet(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
