package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/visiocraft/visiocraft-ai/internal/server/middleware"
	"github.com/visiocraft/visiocraft-ai/internal/types"
)

const projectDetailsField = "project_details"

// handleExtractSkills answers POST /extract-skills. Availability is checked
// before the body is read. A present project_details of any JSON type is
// handed to the extractor, which turns unusable values into an empty list.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	if !s.extractor.Available() {
		s.errorResponse(w, &ErrServiceUnavailable{})
		return
	}

	details, err := s.decodeProjectDetails(w, r)
	if err != nil {
		s.logger.Debug("rejected extraction request",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		s.errorResponse(w, err)
		return
	}

	resp := types.EmptySkillList()
	if skills := s.extractor.ExtractSkills(r.Context(), details); skills != nil {
		resp.Skills = skills
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// decodeProjectDetails reads the body as a JSON object and returns the
// decoded project_details value. A missing, empty, oversized, non-object or
// malformed body, or one without the key, is an *ErrValidation.
func (s *Server) decodeProjectDetails(w http.ResponseWriter, r *http.Request) (any, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	dec := json.NewDecoder(body)

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ErrValidation{Field: "body", Message: "unexpected data after JSON object"}
	}
	if len(fields) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "empty object"}
	}

	raw, ok := fields[projectDetailsField]
	if !ok {
		return nil, &ErrValidation{Field: projectDetailsField, Message: "missing"}
	}

	var details any
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, &ErrValidation{Field: projectDetailsField, Message: err.Error()}
	}
	return details, nil
}
