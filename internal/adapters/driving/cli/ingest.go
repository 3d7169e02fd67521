package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/extract"
)

// ingestTitle is a flag overriding the extracted document title.
var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the index",
	Long: `Reads one or more files, extracts their text, and indexes them for
retrieval. Supported formats: txt, md, html, docx.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (single file only, default: derived from the file)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestTitle != "" && len(args) > 1 {
		return errors.New("--title can only be used with a single file")
	}

	registry := extractRegistry
	if registry == nil {
		registry = extract.DefaultRegistry()
	}

	ctx := context.Background()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		extracted, err := registry.ExtractFile(path, data)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", path, err)
		}

		title := extracted.Title
		if ingestTitle != "" {
			title = ingestTitle
		}

		result, err := ingestService.Ingest(ctx, driving.IngestRequest{
			Title: title,
			Text:  extracted.Text,
		})
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}

		cmd.Printf("Ingested %s\n", path)
		cmd.Printf("  ID:     %s\n", result.DocumentID)
		cmd.Printf("  Title:  %s\n", title)
		cmd.Printf("  Chunks: %d\n", result.ChunkCount)
		if result.Summary != "" {
			cmd.Printf("  Summary: %s\n", result.Summary)
		}
		cmd.Println()
	}

	return nil
}
