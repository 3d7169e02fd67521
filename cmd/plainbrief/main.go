// Command plainbrief ingests legal documents and answers questions about
// them, grounded in the document text. It runs as a CLI and, via the
// serve command, as an HTTP API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/plainbrief/plainbrief/internal/adapters/driven/ai"
	"github.com/plainbrief/plainbrief/internal/adapters/driven/config/file"
	"github.com/plainbrief/plainbrief/internal/adapters/driven/storage/sqlite"
	"github.com/plainbrief/plainbrief/internal/adapters/driving/cli"
	"github.com/plainbrief/plainbrief/internal/chunker"
	"github.com/plainbrief/plainbrief/internal/core/domain"
	"github.com/plainbrief/plainbrief/internal/core/ports/driven"
	"github.com/plainbrief/plainbrief/internal/core/services"
	"github.com/plainbrief/plainbrief/internal/extract"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}

	dataDir := configStore.GetString("storage.dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".plainbrief")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()
	logger.Debug("Document store at %s", store.Path())

	embedSettings := loadEmbeddingSettings(configStore)
	llmSettings := loadLLMSettings(configStore)

	// A missing provider is not fatal: document commands still work, and
	// ingest or ask report the gateway as unavailable when called.
	embedder, err := ai.CreateEmbeddingService(embedSettings)
	if err != nil {
		logger.Warn("Embedding provider unavailable: %v", err)
	}
	llm, err := ai.CreateLLMService(llmSettings)
	if err != nil {
		logger.Warn("LLM provider unavailable: %v", err)
	}
	if custom, ok := llm.(interface{ SetPromptStore(driven.PromptStore) }); ok {
		custom.SetPromptStore(promptStore)
	}

	var chunkOpts []chunker.Option
	if size := configStore.GetInt("chunking.size"); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := configStore.GetInt("chunking.overlap"); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}
	ck := chunker.New(chunkOpts...)
	logger.Debug("Chunking with %d byte windows, %d byte overlap", ck.ChunkSize(), ck.Overlap())

	docStore := store.DocumentStore()
	retrieval := services.NewRetrievalService(docStore)

	ingestService := services.NewIngestService(ck, embedder, llm, docStore)
	answerService := services.NewAnswerService(embedder, llm, retrieval)
	answerService.SetPromptStore(promptStore)
	if k := configStore.GetInt("retrieval.top_k"); k > 0 {
		answerService.SetTopK(k)
	}
	documentService := services.NewDocumentService(docStore)
	analysisService := services.NewAnalysisService(llm, docStore)
	analysisService.SetPromptStore(promptStore)

	// Prompt edits take effect without a restart, which matters for the
	// long-running serve command.
	if _, err := promptStore.Load(driven.PromptAnswer); err == nil {
		if watcher, err := file.WatchPrompts(promptStore); err == nil {
			defer watcher.Close()
		} else {
			logger.Warn("Prompt watcher disabled: %v", err)
		}
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Ingest:     ingestService,
		Answer:     answerService,
		Documents:  documentService,
		Analysis:   analysisService,
		Config:     configStore,
		Extract:    extract.DefaultRegistry(),
		ValidateAI: validateProviders(embedSettings, llmSettings),
	})

	return cli.Execute()
}

// validateProviders returns a func that creates and pings the configured
// AI services, for the config validate command.
func validateProviders(embed *domain.EmbeddingSettings, llm *domain.LLMSettings) func() error {
	return func() error {
		embedder, err := ai.CreateAndValidateEmbeddingService(embed)
		if err != nil {
			return err
		}
		if embedder != nil {
			_ = embedder.Close()
		}

		svc, err := ai.CreateAndValidateLLMService(llm)
		if err != nil {
			return err
		}
		if svc != nil {
			_ = svc.Close()
		}
		return nil
	}
}

// loadEmbeddingSettings reads embedding provider settings from config,
// falling back to environment API keys and per-provider default models.
func loadEmbeddingSettings(cfg driven.ConfigStore) *domain.EmbeddingSettings {
	s := &domain.EmbeddingSettings{
		Provider: domain.AIProvider(cfg.GetString("embedding.provider")),
		Model:    cfg.GetString("embedding.model"),
		BaseURL:  cfg.GetString("embedding.base_url"),
		APIKey:   cfg.GetString("embedding.api_key"),
	}
	if s.Provider == "" {
		s.Provider = domain.AIProviderOllama
	}
	if s.Model == "" {
		s.Model = domain.DefaultEmbeddingModels()[s.Provider]
	}
	if s.APIKey == "" {
		s.APIKey = apiKeyFromEnv(s.Provider)
	}
	return s
}

// loadLLMSettings reads LLM provider settings from config, falling back
// to environment API keys and per-provider default models.
func loadLLMSettings(cfg driven.ConfigStore) *domain.LLMSettings {
	s := &domain.LLMSettings{
		Provider: domain.AIProvider(cfg.GetString("llm.provider")),
		Model:    cfg.GetString("llm.model"),
		BaseURL:  cfg.GetString("llm.base_url"),
		APIKey:   cfg.GetString("llm.api_key"),
	}
	if s.Provider == "" {
		s.Provider = domain.AIProviderOllama
	}
	if s.Model == "" {
		s.Model = domain.DefaultLLMModels()[s.Provider]
	}
	if s.APIKey == "" {
		s.APIKey = apiKeyFromEnv(s.Provider)
	}
	return s
}

func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
