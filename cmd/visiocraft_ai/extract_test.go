package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visiocraft/visiocraft-ai/internal/config"
	"github.com/visiocraft/visiocraft-ai/internal/extraction"
	"github.com/visiocraft/visiocraft-ai/internal/logging"
)

type mockLLMClient struct {
	reply string
	err   error
}

func (m *mockLLMClient) GenerateContent(_ context.Context, _ string) (string, error) {
	return m.reply, m.err
}

func (m *mockLLMClient) Model() string { return "mock-model" }
func (m *mockLLMClient) Close() error  { return nil }

func resetExtractFlags(t *testing.T) {
	t.Helper()
	extractText, extractInFile, extractModel, extractPretty = "", "", "", false
	configPath, verbose = "", false
	t.Cleanup(func() {
		extractText, extractInFile, extractModel, extractPretty = "", "", "", false
		configPath, verbose = "", false
	})
}

func TestWriteExtraction_Success(t *testing.T) {
	e := extraction.New(&mockLLMClient{reply: `{"skills": ["React.js", "MongoDB"]}`}, logging.Discard())

	var out bytes.Buffer
	err := writeExtraction(context.Background(), &out, e, "mock-model", "Built a site with React.js and MongoDB", logging.Discard())
	require.NoError(t, err)

	assert.JSONEq(t, `{"skills": ["React.js", "MongoDB"]}`, out.String())
}

func TestWriteExtraction_FailureIsEmptyList(t *testing.T) {
	e := extraction.New(&mockLLMClient{err: errors.New("network down")}, logging.Discard())

	var out bytes.Buffer
	err := writeExtraction(context.Background(), &out, e, "mock-model", "Built a site", logging.Discard())
	require.NoError(t, err)

	assert.JSONEq(t, `{"skills": []}`, out.String())
}

func TestWriteExtraction_Pretty(t *testing.T) {
	resetExtractFlags(t)
	extractPretty = true
	e := extraction.New(&mockLLMClient{reply: `{"skills": ["Figma"]}`}, logging.Discard())

	var out bytes.Buffer
	err := writeExtraction(context.Background(), &out, e, "mock-model", "Designed a brand in Figma", logging.Discard())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "EXTRACTED SKILLS")
	assert.Contains(t, out.String(), "• Figma")
	assert.Contains(t, out.String(), "mock-model")
}

func TestWriteExtraction_ModelUnavailable(t *testing.T) {
	e := extraction.New(nil, logging.Discard())

	var out bytes.Buffer
	err := writeExtraction(context.Background(), &out, e, "mock-model", "Built a site", logging.Discard())

	assert.ErrorIs(t, err, errModelUnavailable)
	assert.Empty(t, out.String())
}

func TestReadProjectDetails(t *testing.T) {
	t.Run("text flag", func(t *testing.T) {
		resetExtractFlags(t)
		extractText = "Go and gRPC"

		got, err := readProjectDetails(strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, "Go and gRPC", got)
	})

	t.Run("file", func(t *testing.T) {
		resetExtractFlags(t)
		path := filepath.Join(t.TempDir(), "project.txt")
		require.NoError(t, os.WriteFile(path, []byte("Figma mockups"), 0644))
		extractInFile = path

		got, err := readProjectDetails(strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, "Figma mockups", got)
	})

	t.Run("stdin", func(t *testing.T) {
		resetExtractFlags(t)
		extractInFile = "-"

		got, err := readProjectDetails(strings.NewReader("Kubernetes"))
		require.NoError(t, err)
		assert.Equal(t, "Kubernetes", got)
	})

	t.Run("missing file", func(t *testing.T) {
		resetExtractFlags(t)
		extractInFile = "/nonexistent/project.txt"

		_, err := readProjectDetails(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestLoadConfig_OverridesWin(t *testing.T) {
	resetExtractFlags(t)
	t.Setenv(config.EnvAPIKey, "env-key")
	t.Setenv(config.EnvPort, "6000")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvLogLevel, "")

	cfg, err := loadConfig(func(c *config.Config) { c.Port = 7000 })
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadConfig_ConfigFileAndVerbose(t *testing.T) {
	resetExtractFlags(t)
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvModel, "")
	t.Setenv(config.EnvLogFormat, "")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model": "gemini-2.5-pro", "log_format": "json"}`), 0644))
	configPath = path
	verbose = true

	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	resetExtractFlags(t)
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvLogFormat, "xml")

	_, err := loadConfig(nil)
	assert.Error(t, err)
}

func TestLoadConfig_ZeroPortFlagRejected(t *testing.T) {
	resetExtractFlags(t)
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvLogLevel, "")

	_, err := loadConfig(func(c *config.Config) { c.Port = 0 })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'port'")
}

func TestOpenModel_MissingKeyIsNil(t *testing.T) {
	cfg := config.Defaults()

	client := openModel(context.Background(), &cfg, logging.Discard())
	assert.Nil(t, client)
}

func TestRunExtract_MutuallyExclusiveInputs(t *testing.T) {
	resetExtractFlags(t)
	extractText = "Go"
	extractInFile = "project.txt"

	err := runExtract(extractCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "extract")
}
