package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/facegate/facegate/internal/config"
	"github.com/facegate/facegate/internal/store"
)

var enrollBatchCmd = &cobra.Command{
	Use:   "enroll-batch <directory>",
	Short: "Enroll subjects from a directory of images",
	Long: `Enroll every image in a directory. The subject ID is taken from the
file name without its extension, so ./people/alice.jpg enrolls "alice".

Already enrolled subjects are skipped unless --force is set.

Examples:
  # Enroll all images (5 concurrent workers)
  facegate enroll-batch ./people

  # Use different concurrency and overwrite existing enrollments
  facegate enroll-batch ./people --concurrency 3 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrollBatch,
}

func init() {
	rootCmd.AddCommand(enrollBatchCmd)

	enrollBatchCmd.Flags().Int("concurrency", 5, "Number of parallel workers")
	enrollBatchCmd.Flags().Bool("force", false, "Re-enroll subjects that already exist")
}

// listImageFiles returns the image files directly inside dir.
func listImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".webp":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func runEnrollBatch(cmd *cobra.Command, args []string) error {
	concurrency := mustGetInt(cmd, "concurrency")
	force := mustGetBool(cmd, "force")

	cfg := config.Load()
	ctx := context.Background()

	files, err := listImageFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No image files found")
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer st.Close()

	// Filter out subjects that are already enrolled
	var toProcess []string
	skipped := 0
	for _, path := range files {
		subjectID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if !force {
			existing, err := st.Get(ctx, subjectID)
			if err != nil {
				return fmt.Errorf("checking enrollment: %w", err)
			}
			if existing != nil {
				skipped++
				continue
			}
		}
		toProcess = append(toProcess, path)
	}

	if len(toProcess) == 0 {
		fmt.Println("All subjects already enrolled!")
		return nil
	}

	fmt.Printf("Images to process: %d (skipping %d already enrolled)\n\n", len(toProcess), skipped)

	bar := progressbar.NewOptions(len(toProcess),
		progressbar.OptionSetDescription("Enrolling subjects"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	pipeline := newPipeline(cfg)
	embedder := newEmbedder(cfg)

	var successCount, errorCount int
	var mu sync.Mutex
	var failures []string

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, path := range toProcess {
		wg.Add(1)
		go func(imagePath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			defer bar.Add(1)

			subjectID := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))

			fail := func(err error) {
				mu.Lock()
				errorCount++
				failures = append(failures, fmt.Sprintf("%s: %v", subjectID, err))
				mu.Unlock()
			}

			image, err := os.ReadFile(imagePath)
			if err != nil {
				fail(err)
				return
			}

			tensor, err := pipeline.Preprocess(image)
			if err != nil {
				fail(err)
				return
			}

			emb, err := embedder.Infer(ctx, tensor, cfg.Detect.EmbedSize)
			if err != nil {
				fail(err)
				return
			}

			err = st.Save(ctx, store.StoredEmbedding{
				SubjectID: subjectID,
				Embedding: emb,
				Model:     storedModelName,
				Dim:       len(emb),
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				fail(err)
				return
			}

			mu.Lock()
			successCount++
			mu.Unlock()
		}(path)
	}

	wg.Wait()
	fmt.Println()

	fmt.Printf("Enrolled: %d, failed: %d\n", successCount, errorCount)
	for _, f := range failures {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
