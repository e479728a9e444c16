package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit/internal/core/ports/driving"
)

var (
	ingestID   string
	ingestName string
	ingestType string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a text document into the index",
	Long: `Reads the extracted text of a document, splits it into overlapping
chunks, embeds them and indexes them in the vector store. Re-ingesting
the same source id overwrites the previous ingestion's points.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "source id (default: file name without extension)")
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "human-readable document name (default: file name)")
	ingestCmd.Flags().StringVar(&ingestType, "type", "", "document type (default: file extension)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cleanup, err := initServices(false)
	if err != nil {
		return err
	}
	defer cleanup()

	base := filepath.Base(path)
	sourceID := ingestID
	if sourceID == "" {
		sourceID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name := ingestName
	if name == "" {
		name = base
	}
	docType := ingestType
	if docType == "" {
		docType = strings.TrimPrefix(filepath.Ext(base), ".")
		if docType == "" {
			docType = "txt"
		}
	}

	result, err := ingestService.Ingest(cmd.Context(), driving.IngestRequest{
		SourceID:     sourceID,
		Name:         name,
		Text:         string(data),
		DocumentType: docType,
	})
	if err != nil {
		if result != nil && result.VectorCount > 0 {
			cmd.Printf("Partial ingestion: %d of %d vectors written. Re-run to reconcile.\n",
				result.VectorCount, result.ChunkCount)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s: %d chunks, %d vectors\n", sourceID, result.ChunkCount, result.VectorCount)
	return nil
}
