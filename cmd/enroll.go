package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/facegate/facegate/internal/config"
	"github.com/facegate/facegate/internal/store"
)

// storedModelName is recorded with every embedding written from the CLI.
const storedModelName = "facenet-512"

var enrollCmd = &cobra.Command{
	Use:   "enroll <subject-id> <image-path>",
	Short: "Enroll a subject from an image file",
	Long: `Enroll a subject by running the face pipeline on an image file and
storing the resulting embedding. Re-enrolling an existing subject replaces
the stored embedding.

Examples:
  facegate enroll alice ./photos/alice.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
}

func runEnroll(cmd *cobra.Command, args []string) error {
	subjectID, imagePath := args[0], args[1]

	cfg := config.Load()
	ctx := context.Background()

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	tensor, err := newPipeline(cfg).Preprocess(image)
	if err != nil {
		return fmt.Errorf("image rejected: %w", err)
	}

	emb, err := newEmbedder(cfg).Infer(ctx, tensor, cfg.Detect.EmbedSize)
	if err != nil {
		return fmt.Errorf("computing embedding: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer st.Close()

	err = st.Save(ctx, store.StoredEmbedding{
		SubjectID: subjectID,
		Embedding: emb,
		Model:     storedModelName,
		Dim:       len(emb),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("storing embedding: %w", err)
	}

	fmt.Printf("Enrolled %s (%d dimensions)\n", subjectID, len(emb))
	return nil
}
