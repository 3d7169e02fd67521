// Package cli implements the plainbrief command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/extract"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// version is set by main at startup (ldflags in release builds).
var version = "dev"

// verbose enables debug logging for all commands.
var verbose bool

// Services the commands call. main wires these before Execute; commands
// guard against the ones they need being nil so that partial wiring
// (e.g. no AI provider configured) fails with a clear message.
var (
	ingestService   driving.IngestService
	answerService   driving.AnswerService
	documentService driving.DocumentService
	analysisService driving.AnalysisService
	configStore     driven.ConfigStore
	extractRegistry *extract.Registry
	validateAI      func() error
)

var rootCmd = &cobra.Command{
	Use:   "plainbrief",
	Short: "Plain-language answers from your legal documents",
	Long: `PlainBrief ingests legal documents, indexes them for semantic
retrieval, and answers questions about them in plain language,
grounded in the document text.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// Services bundles everything the commands depend on.
type Services struct {
	Ingest    driving.IngestService
	Answer    driving.AnswerService
	Documents driving.DocumentService
	Analysis  driving.AnalysisService
	Config    driven.ConfigStore
	Extract   *extract.Registry

	// ValidateAI pings the configured AI providers.
	ValidateAI func() error
}

// Configure wires the services the commands use.
func Configure(s Services) {
	ingestService = s.Ingest
	answerService = s.Answer
	documentService = s.Documents
	analysisService = s.Analysis
	configStore = s.Config
	extractRegistry = s.Extract
	validateAI = s.ValidateAI
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
