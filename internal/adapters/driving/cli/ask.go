package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driving"
)

var (
	askSource string
	askName   string
	askTopK   int
	askJSON   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about an ingested document",
	Long: `Answers a free-text question grounded on the chunks of one ingested
document. The model is constrained to the retrieved context; when the
document does not cover the question, it says so rather than guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSource, "source", "", "source id of the document to ask about (required)")
	askCmd.Flags().StringVar(&askName, "source-name", "", "document name shown to the model")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, fmt.Sprintf("chunks to ground the answer on (max %d)", driving.MaxAnswerTopK))
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	_ = askCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	cleanup, err := initServices(true)
	if err != nil {
		return err
	}
	defer cleanup()

	topK := clamp(askTopK, 1, driving.MaxAnswerTopK)
	result, err := answerService.Answer(cmd.Context(), question, askSource, askName, topK)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, result)
	}
	return outputAnswer(cmd, result)
}

func outputAnswer(cmd *cobra.Command, result *domain.AnswerResult) error {
	cmd.Println(result.Answer)

	if !result.Success {
		return nil
	}

	cmd.Println()
	cmd.Printf("Confidence: %.0f%%  Model: %s  Tokens: %d\n",
		result.Confidence*100, result.ModelUsed, result.Usage.TotalTokens)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, source := range result.Sources {
			cmd.Printf("  [%d] (%.2f) %s\n", i+1, source.Score, source.TextPreview)
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
