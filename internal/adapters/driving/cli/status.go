package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit/internal/adapters/driven/ai"
	"github.com/studykit-labs/studykit/internal/adapters/driven/vector/qdrant"
	"github.com/studykit-labs/studykit/internal/core/domain"
)

const statusPingTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check configuration and service connectivity",
	Long: `Loads the configuration, pings the embedding and generative model
services and inspects the vector store collection. Use this to diagnose
a failing ingest or ask command.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Printf("Config: %s\n\n", configStore.Path())

	// Embedding service
	cmd.Printf("Embedding: %s / %s ... ", s.Embedding.Provider.Description(), s.Embedding.Model)
	if svc, err := ai.CreateAndValidateEmbeddingService(&s.Embedding); err != nil {
		cmd.Printf("UNAVAILABLE\n  %v\n", err)
	} else {
		cmd.Printf("ok (%d dimensions)\n", svc.Dimensions())
		svc.Close()
	}

	// Generative model
	cmd.Printf("LLM:       %s / %s ... ", s.LLM.Provider.Description(), s.LLM.Model)
	if svc, err := ai.CreateAndValidateLLMService(&s.LLM); err != nil {
		cmd.Printf("UNAVAILABLE\n  %v\n", err)
	} else {
		cmd.Println("ok")
		svc.Close()
	}

	// Vector store
	cmd.Printf("Vector store: %s collection %q ... ", s.VectorStore.URL, s.VectorStore.Collection)
	index := qdrant.NewVectorIndex(qdrant.Config{
		BaseURL: s.VectorStore.URL,
		APIKey:  s.VectorStore.APIKey,
		Timeout: statusPingTimeout,
	})
	defer index.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), statusPingTimeout)
	defer cancel()

	info, err := index.CollectionInfo(ctx, s.VectorStore.Collection)
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		cmd.Println("reachable, collection not created yet (first ingest creates it)")
	case err != nil:
		cmd.Printf("UNAVAILABLE\n  %v\n", err)
	default:
		cmd.Printf("ok (%d points, %d dimensions, %s)\n", info.PointCount, info.VectorSize, info.Status)
	}

	return nil
}
