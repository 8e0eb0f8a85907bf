package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/visiocraft/visiocraft-ai/internal/config"
	"github.com/visiocraft/visiocraft-ai/internal/extraction"
	"github.com/visiocraft/visiocraft-ai/internal/llm"
	"github.com/visiocraft/visiocraft-ai/internal/observability"
	"github.com/visiocraft/visiocraft-ai/internal/types"
)

var errModelUnavailable = errors.New("AI service is not available: check " + config.EnvAPIKey)

var (
	extractText   string
	extractInFile string
	extractModel  string
	extractPretty bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a project description once",
	Long:  "Run a single skill extraction and print {\"skills\": [...]} to stdout. Reads --text, --in, or stdin.",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractText, "text", "t", "", "Project description")
	extractCmd.Flags().StringVarP(&extractInFile, "in", "i", "", "Path to a file holding the project description (- for stdin)")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Print a human-readable box instead of JSON")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "Gemini model name (default "+llm.DefaultModel+", env GEMINI_MODEL)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if extractText != "" && extractInFile != "" {
		return fmt.Errorf("--text and --in are mutually exclusive")
	}

	details, err := readProjectDetails(cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := loadConfig(func(c *config.Config) {
		if cmd.Flags().Changed("model") {
			c.Model = extractModel
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := openModel(ctx, cfg, logger)
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	return writeExtraction(ctx, cmd.OutOrStdout(), extraction.New(client, logger), cfg.Model, details, logger)
}

func writeExtraction(ctx context.Context, out io.Writer, e *extraction.Extractor, model, details string, logger *slog.Logger) error {
	if !e.Available() {
		return errModelUnavailable
	}

	result := e.Extract(ctx, details)
	if !result.OK() {
		logger.Debug("extraction failed", "error", result.Err)
	}

	if extractPretty {
		observability.NewPrinter(out).PrintExtraction(details, model, result)
		return nil
	}

	data, err := json.MarshalIndent(types.SkillList{Skills: result.SkillsOrEmpty()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func readProjectDetails(stdin io.Reader) (string, error) {
	switch {
	case extractText != "":
		return extractText, nil
	case extractInFile == "" || extractInFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(extractInFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
}
