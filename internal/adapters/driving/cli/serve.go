package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/plainbrief/plainbrief/internal/adapters/driving/httpapi"
	"github.com/plainbrief/plainbrief/internal/logger"
)

var (
	servePort int
	serveCORS bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the document upload, management, and chat API over HTTP.
The server runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", httpapi.DefaultPort, "port to listen on")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", true, "send permissive CORS headers")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if ingestService == nil || answerService == nil || documentService == nil {
		return errors.New("services not configured")
	}

	server := httpapi.NewServer(httpapi.Config{
		Port:       servePort,
		EnableCORS: serveCORS,
	}, ingestService, answerService, documentService, analysisService, extractRegistry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
