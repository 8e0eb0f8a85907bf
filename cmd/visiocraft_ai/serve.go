package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/visiocraft/visiocraft-ai/internal/config"
	"github.com/visiocraft/visiocraft-ai/internal/extraction"
	"github.com/visiocraft/visiocraft-ai/internal/llm"
	"github.com/visiocraft/visiocraft-ai/internal/server"
)

var (
	serveHost  string
	servePort  int
	serveModel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing POST /extract-skills.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to bind (default "+config.DefaultHost+", env HOST)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, fmt.Sprintf("Port to listen on (default %d, env PORT)", config.DefaultPort))
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Gemini model name (default "+llm.DefaultModel+", env GEMINI_MODEL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(func(c *config.Config) {
		if cmd.Flags().Changed("host") {
			c.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			c.Port = servePort
		}
		if cmd.Flags().Changed("model") {
			c.Model = serveModel
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := openModel(ctx, cfg, logger)
	if client != nil {
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close Google AI client", "error", err)
			}
		}()
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Addr = cfg.Addr()
	srvCfg.MaxBodyBytes = cfg.MaxBodyBytes

	srv := server.New(srvCfg, extraction.New(client, logger), logger)
	return srv.Start(ctx)
}
