package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/facegate/facegate/internal/config"
	"github.com/facegate/facegate/internal/store"
	"github.com/facegate/facegate/internal/web"
	"github.com/facegate/facegate/internal/web/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the face verification web server",
	Long: `Start the Facegate web server.
The server exposes enrollment, verification, identification and inspection
endpoints under /api/v1. Enrolled embeddings are loaded into an in-memory
HNSW index at startup for fast 1:N identification.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides SERVER_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides SERVER_HOST)")
}

// warmIndex loads every stored embedding into the identification index.
func warmIndex(ctx context.Context, st *store.Postgres, index *store.IdentifyIndex) error {
	fmt.Println("Building in-memory HNSW index for identification...")
	all, err := st.All(ctx)
	if err != nil {
		return fmt.Errorf("loading stored embeddings: %w", err)
	}
	if err := index.Build(all); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	fmt.Printf("HNSW index built with %d subjects\n", index.Count())
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Server.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	fmt.Println("Connecting to PostgreSQL database...")
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer st.Close()

	index := store.NewIdentifyIndex()
	if err := warmIndex(context.Background(), st, index); err != nil {
		return err
	}

	faces := handlers.NewFacesHandler(newPipeline(cfg), newEmbedder(cfg), st, index, cfg.Match.Threshold)
	server := web.NewServer(cfg.Server.Addr(), faces)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Facegate on http://%s\n", cfg.Server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
