// Package cli implements the studykit command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit/internal/adapters/driven/ai"
	configfile "github.com/studykit-labs/studykit/internal/adapters/driven/config/file"
	"github.com/studykit-labs/studykit/internal/adapters/driven/storage/sqlite"
	"github.com/studykit-labs/studykit/internal/adapters/driven/vector/qdrant"
	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
	"github.com/studykit-labs/studykit/internal/core/ports/driving"
	"github.com/studykit-labs/studykit/internal/core/services"
	"github.com/studykit-labs/studykit/internal/logger"
	"github.com/studykit-labs/studykit/internal/normalisers/plaintext"
	"github.com/studykit-labs/studykit/internal/postprocessors"
	"github.com/studykit-labs/studykit/internal/postprocessors/chunker"
)

// version is set via SetVersion from the main package.
var version = "dev"

var verbose bool

// Services wired by initServices before a command runs.
var (
	configStore     driven.ConfigStore
	vectorIndex     driven.VectorIndex
	embeddingSvc    driven.EmbeddingService
	llmSvc          driven.LLMService
	ingestService   driving.IngestService
	answerService   driving.AnswerService
	documentService driving.DocumentService
)

var rootCmd = &cobra.Command{
	Use:   "studykit",
	Short: "Question answering over your study documents",
	Long: `StudyKit ingests study documents into a vector index and answers
free-text questions about them with retrieval-augmented generation:
the most relevant chunks are retrieved by cosine similarity and a
generative model is constrained to answer from them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// loadSettings reads the config file and applies environment overrides.
func loadSettings() (*domain.Settings, error) {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	configStore = store

	loaded, err := store.Load()
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(loaded)

	// Guard against a hand-edited config zeroing the chunking window.
	if loaded.Chunking.MaxChunkChars <= 0 {
		loaded.Chunking.MaxChunkChars = chunker.DefaultChunkSize
	}
	if loaded.Chunking.OverlapChars < 0 {
		loaded.Chunking.OverlapChars = chunker.DefaultChunkOverlap
	}

	return loaded, nil
}

// applyEnvOverrides lets deployment environments override the config
// file without editing it. API keys are usually supplied this way.
func applyEnvOverrides(s *domain.Settings) {
	if v := os.Getenv("QDRANT_URL"); v != "" {
		s.VectorStore.URL = v
	}
	if v := os.Getenv("QDRANT_API_KEY"); v != "" {
		s.VectorStore.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if s.Embedding.Provider == domain.AIProviderOpenAI && s.Embedding.APIKey == "" {
			s.Embedding.APIKey = v
		}
		if s.LLM.Provider == domain.AIProviderOpenAI && s.LLM.APIKey == "" {
			s.LLM.APIKey = v
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		if s.LLM.Provider == domain.AIProviderAnthropic && s.LLM.APIKey == "" {
			s.LLM.APIKey = v
		}
	}
}

// initServices builds the adapters and core services a command needs.
// needLLM controls whether the generative model client is created;
// ingestion and plain search work without one.
func initServices(needLLM bool) (cleanup func(), err error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}

	embeddingSvc, err = ai.CreateEmbeddingService(&s.Embedding)
	if err != nil {
		return nil, err
	}

	if needLLM {
		llmSvc, err = ai.CreateLLMService(&s.LLM)
		if err != nil {
			embeddingSvc.Close()
			return nil, err
		}
	}

	vectorIndex = qdrant.NewVectorIndex(qdrant.Config{
		BaseURL: s.VectorStore.URL,
		APIKey:  s.VectorStore.APIKey,
	})

	docStore, err := sqlite.NewStore("")
	if err != nil {
		embeddingSvc.Close()
		if llmSvc != nil {
			llmSvc.Close()
		}
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	collection := s.VectorStore.Collection
	pipeline := postprocessors.NewPipeline(chunker.New(
		chunker.WithChunkSize(s.Chunking.MaxChunkChars),
		chunker.WithOverlap(s.Chunking.OverlapChars),
	))

	ingestService = services.NewIngestPipeline(
		plaintext.New(), pipeline, embeddingSvc, vectorIndex, docStore, collection)
	answerService = services.NewRAGEngine(
		embeddingSvc, vectorIndex, services.NewAnswerComposer(llmSvc), collection)
	documentService = services.NewDocumentManager(docStore, vectorIndex, collection)

	cleanup = func() {
		embeddingSvc.Close()
		if llmSvc != nil {
			llmSvc.Close()
		}
		vectorIndex.Close()
		docStore.Close()
	}
	return cleanup, nil
}
