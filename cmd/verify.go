package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facegate/facegate/internal/config"
	"github.com/facegate/facegate/internal/embedding"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <subject-id> <image-path>",
	Short: "Verify an image against an enrolled subject",
	Long: `Verify that the face in an image file belongs to an enrolled subject.
The image goes through the same pipeline as enrollment and the resulting
embedding is compared against the stored one by cosine similarity.

Examples:
  facegate verify alice ./photos/probe.jpg
  facegate verify alice ./photos/probe.jpg --threshold 0.75`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Float64("threshold", 0, "Similarity threshold (overrides MATCH_THRESHOLD)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	subjectID, imagePath := args[0], args[1]

	cfg := config.Load()
	ctx := context.Background()

	threshold := cfg.Match.Threshold
	if f := mustGetFloat64(cmd, "threshold"); f > 0 {
		threshold = f
	}

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer st.Close()

	stored, err := loadStoredVector(ctx, st, subjectID)
	if err != nil {
		return err
	}

	tensor, err := newPipeline(cfg).Preprocess(image)
	if err != nil {
		return fmt.Errorf("image rejected: %w", err)
	}

	probe, err := newEmbedder(cfg).Infer(ctx, tensor, cfg.Detect.EmbedSize)
	if err != nil {
		return fmt.Errorf("computing embedding: %w", err)
	}

	result, err := embedding.Compare(probe, stored, threshold)
	if err != nil {
		return fmt.Errorf("comparing embeddings: %w", err)
	}

	verdict := "NO MATCH"
	if result.IsMatch {
		verdict = "MATCH"
	}
	fmt.Printf("%s: similarity %.4f (threshold %.2f)\n", verdict, result.Similarity, result.Threshold)
	return nil
}
