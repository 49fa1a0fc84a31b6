// Package main runs the Alcove server: an HTTP front end over the vault
// tool catalogue, the document-conversion pipeline, and the in-memory
// conversation store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alcovehq/alcove/pkg/agent"
	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/config"
	"github.com/alcovehq/alcove/pkg/docconv"
	"github.com/alcovehq/alcove/pkg/logging"
	"github.com/alcovehq/alcove/pkg/security/pathguard"
	"github.com/alcovehq/alcove/pkg/server"
	"github.com/alcovehq/alcove/pkg/session"
	"github.com/alcovehq/alcove/pkg/tools/documents"
	"github.com/alcovehq/alcove/pkg/tools/vaultops"
	"github.com/alcovehq/alcove/pkg/vault"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigFile  string
	EnvFile     string
	Host        string
	Port        int
	ShowVersion bool
	ShowTools   bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("Alcove v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		cancel()
		log.Printf("Server failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cli.EnvFile, "env", "", "Path to a .env file (default: .env in the working directory, if present)")
	flag.StringVar(&cli.Host, "host", "", "Listen host (overrides config)")
	flag.IntVar(&cli.Port, "port", 0, "Listen port (overrides config)")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")
	flag.BoolVar(&cli.ShowTools, "tools", false, "Print the tool catalogue and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Alcove - Vault Agent Server\n\n")
		fmt.Fprintf(os.Stderr, "Usage: alcove-server [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Run against a local vault with the API key from the environment\n")
		fmt.Fprintf(os.Stderr, "  ALCOVE_VAULT_API_KEY=... alcove-server\n\n")
		fmt.Fprintf(os.Stderr, "  # Run with a config file\n")
		fmt.Fprintf(os.Stderr, "  alcove-server -config alcove.yaml\n\n")
	}

	flag.Parse()
	return cli
}

func run(ctx context.Context, cli *CLIConfig) error {
	// Secrets come from the environment; a .env file feeds it in
	// development. A missing default .env is not an error.
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}
	if cli.Host != "" {
		cfg.Server.Host = cli.Host
	}
	if cli.Port != 0 {
		cfg.Server.Port = cli.Port
	}

	logger, err := logging.NewLogger("server")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	client := vault.NewClient(cfg.Vault)

	guard, err := pathguard.New(cfg.Conversion.BaseDir, cfg.Conversion.AllowedPatterns, cfg.Conversion.DeniedPatterns)
	if err != nil {
		return fmt.Errorf("failed to create path guard: %w", err)
	}

	pipeline := docconv.NewPipeline(
		docconv.NewDocumentConverter(),
		docconv.NewRawTextConverter(),
		cfg.Conversion.Timeout,
	)

	registry := tools.NewRegistry()
	registry.MustRegister(vaultops.All(client)...)
	registry.MustRegister(documents.NewConvertDocumentTool(pipeline, guard))

	if cli.ShowTools {
		for _, entry := range registry.Catalogue() {
			fmt.Printf("%s\n  %s\n", entry.Name, entry.Description)
		}
		return nil
	}

	runner := agent.NewDirectRunner(registry, logger)
	srv := server.New(runner, session.NewStore(), pipeline, guard, logger)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (vault at %s)", addr, client.BaseURL())
		log.Printf("Alcove listening on %s", addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
