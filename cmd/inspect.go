package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facegate/facegate/internal/config"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image-path>",
	Short: "Run the face pipeline on an image and print the report",
	Long: `Run every pipeline stage on an image file and print the collected
measurements as JSON. A rejected image still produces a report showing how
far it got and why it was rejected.

Examples:
  facegate inspect ./photos/probe.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	report, pipeErr := newPipeline(cfg).Inspect(image)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Println(string(out))

	if pipeErr != nil {
		fmt.Printf("Rejected: %v\n", pipeErr)
	} else {
		fmt.Println("Accepted")
	}
	return nil
}
