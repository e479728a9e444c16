package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit/internal/core/ports/driving"
)

var (
	searchSource string
	searchLimit  int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chunks by similarity",
	Long: `Returns the chunks most similar to the query by cosine similarity,
without invoking the generative model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchSource, "source", "", "restrict results to one source id")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, fmt.Sprintf("maximum number of results (max %d)", driving.MaxSearchTopK))
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	cleanup, err := initServices(false)
	if err != nil {
		return err
	}
	defer cleanup()

	limit := clamp(searchLimit, 1, driving.MaxSearchTopK)
	results, err := answerService.Search(cmd.Context(), query, searchSource, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, result := range results {
		cmd.Printf("[%d] %s #%d (%.2f)\n", i+1, result.SourceID, result.ChunkIndex, result.Score)
		cmd.Printf("    %s\n", result.Text)
	}
	return nil
}
