package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentJSON bool

var documentCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"document", "docs"},
	Short:   "Manage ingested documents",
	Long:    `List, inspect, or delete ingested documents and their indexed vectors.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [source-id]",
	Short: "Show one document's record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [source-id]",
	Short: "Delete a document and its vectors",
	Long: `Removes the document's points from the vector index, then its
metadata record. If the index delete fails, the record is kept so the
command can be re-run.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentDelete,
}

func init() {
	documentCmd.PersistentFlags().BoolVar(&documentJSON, "json", false, "output as JSON")
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	cleanup, err := initServices(false)
	if err != nil {
		return err
	}
	defer cleanup()

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%-24s %-28s %-8s chunks=%d vectors=%d ingested=%s\n",
			doc.ID, doc.Name, doc.Status, doc.ChunkCount, doc.VectorCount,
			doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	cleanup, err := initServices(false)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting document: %w", err)
	}

	if documentJSON {
		return outputJSON(cmd, doc)
	}

	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Name:     %s\n", doc.Name)
	cmd.Printf("Type:     %s\n", doc.DocumentType)
	cmd.Printf("Status:   %s\n", doc.Status)
	cmd.Printf("Chunks:   %d\n", doc.ChunkCount)
	cmd.Printf("Vectors:  %d\n", doc.VectorCount)
	cmd.Printf("Ingested: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	cleanup, err := initServices(false)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	cmd.Printf("Deleted %s and its indexed vectors\n", args[0])
	return nil
}
