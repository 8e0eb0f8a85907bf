// Package extraction turns a free-text project description into a list of
// skills by asking the configured model. Every failure degrades to an empty
// list at the public boundary; Extract keeps the reason for callers and tests
// that need it.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/visiocraft/visiocraft-ai/internal/llm"
	"github.com/visiocraft/visiocraft-ai/internal/prompts"
	"github.com/visiocraft/visiocraft-ai/internal/schemas"
	"github.com/visiocraft/visiocraft-ai/internal/types"
	rootschemas "github.com/visiocraft/visiocraft-ai/schemas"
)

// Extractor is the skill extraction adapter. It is safe for concurrent use;
// the client is set once at construction and never replaced.
type Extractor struct {
	client   llm.Client
	template string
	logger   *slog.Logger
}

// New returns an Extractor using client. A nil client yields an adapter that
// reports itself unavailable and never calls out.
func New(client llm.Client, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client:   client,
		template: prompts.MustGet(prompts.ExtractionFile, prompts.ExtractSkillsKey),
		logger:   logger,
	}
}

// Available reports whether the model handle was initialized.
func (e *Extractor) Available() bool {
	return e != nil && e.client != nil
}

// ExtractSkills returns the skills found in details, or an empty list on any
// failure. It never returns nil and never panics.
func (e *Extractor) ExtractSkills(ctx context.Context, details any) []string {
	return e.Extract(ctx, details).SkillsOrEmpty()
}

// Extract runs one extraction. details must be a non-empty string; any other
// value fails with an *InputError before the model is called.
func (e *Extractor) Extract(ctx context.Context, details any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("skill extraction panicked", "panic", r)
			result = failure(&APICallError{Message: fmt.Sprintf("panic: %v", r)})
		}
	}()

	if !e.Available() {
		e.logger.Warn("model handle is not initialized, skipping skill extraction")
		return failure(ErrModelUnavailable)
	}

	req, err := toRequest(details)
	if err != nil {
		e.logger.Debug("rejected project details", "error", err)
		return failure(err)
	}

	prompt := BuildPrompt(e.template, req.ProjectDetails)

	raw, err := e.client.GenerateContent(ctx, prompt)
	if err != nil {
		apiErr := &APICallError{Message: "failed to generate content", Cause: err}
		e.logger.Error("model call failed", "model", e.client.Model(), "error", err)
		return failure(apiErr)
	}

	skills, err := ParseSkills(raw)
	if err != nil {
		e.logger.Warn("could not use model reply", "error", err, "response", raw)
		return failure(err)
	}

	e.logger.Debug("extracted skills", "count", len(skills))
	return success(skills)
}

// BuildPrompt embeds details verbatim in the extraction template.
func BuildPrompt(template, details string) string {
	return prompts.Format(template, map[string]string{
		"ProjectDetails": details,
	})
}

// ParseSkills turns a raw model reply into a skill list. The reply is
// trimmed of surrounding whitespace, must be valid JSON, and must match the
// skill list schema.
func ParseSkills(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &ParseError{Response: raw, Cause: err}
	}

	if err := schemas.Validate(rootschemas.SkillList, []byte(text)); err != nil {
		return nil, &SchemaError{Response: raw, Cause: err}
	}

	var list types.SkillList
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, &ParseError{Response: raw, Cause: err}
	}
	if list.Skills == nil {
		list.Skills = []string{}
	}
	return list.Skills, nil
}

func toRequest(details any) (*types.ExtractionRequest, error) {
	s, ok := details.(string)
	if !ok {
		return nil, &InputError{Message: fmt.Sprintf("project details must be a string, got %T", details)}
	}

	req := &types.ExtractionRequest{ProjectDetails: s}
	if err := req.Validate(); err != nil {
		return nil, &InputError{Message: "project details are empty", Cause: err}
	}
	return req, nil
}
