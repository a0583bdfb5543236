package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"princegaming/app"
	"princegaming/config"
)

var (
	configPath string
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "princegaming",
		Short: "Princegaming storefront and inventory panel",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadEnv()
			return setupLogger()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "princegaming.yaml", "path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront and the inventory panel",
		RunE:  runServe,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog tools",
	}
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the in-stock catalog as a PDF",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "catalogo.pdf", "output file")
	catalogCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(serveCmd, catalogCmd)

	err := rootCmd.Execute()
	_ = zap.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnv loads .env outside production. In production, variables should be set directly.
func loadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	// Overload so .env values win over the shell
	if err := godotenv.Overload(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not loaded, using system environment variables: %v\n", err)
	}
}

func setupLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// start initializes the app and serves it in the background
func start(ctx context.Context) (*app.App, *http.Server, <-chan error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	a, err := app.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return a, srv, errCh, nil
}

func shutdown(a *app.App, srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorf("❌ Shutdown: %v", err)
	}
	if err := a.Close(); err != nil {
		zap.S().Errorf("❌ Close: %v", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, srv, errCh, err := start(ctx)
	if err != nil {
		return err
	}
	defer shutdown(a, srv)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		zap.S().Infof("👋 Shutting down")
	}
	return nil
}

// runExport serves the catalog page locally so headless Chrome can print it
func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, srv, errCh, err := start(ctx)
	if err != nil {
		return err
	}
	defer shutdown(a, srv)

	if !a.Session.IsAuthenticated() {
		return errors.New("catalog export needs a saved session, run serve and log in first")
	}

	pdf, err := a.Catalog.GeneratePDF(ctx)
	if err != nil {
		return err
	}
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	default:
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	zap.S().Infof("✅ Catalog written to %s (%d bytes)", outPath, len(pdf))
	return nil
}
