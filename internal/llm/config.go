// Package llm wraps the Gemini API behind a small client interface so the
// extraction code can be exercised without network access.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// DefaultModel is the model the service talks to unless configured otherwise.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps extraction output stable between calls.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the process-wide client.
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
	// JSONMode asks the API for an application/json response body.
	JSONMode bool
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		JSONMode:    true,
	}
}

// WithModel returns a copy of c using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	next := *c
	if model != "" {
		next.Model = model
	}
	return &next
}
