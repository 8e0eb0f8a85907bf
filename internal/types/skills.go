// Package types defines the request and response bodies of the skill extraction service.
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ExtractionRequest is the input of one skill extraction.
type ExtractionRequest struct {
	ProjectDetails string `json:"project_details" validate:"required"`
}

// Validate reports whether the request carries a non-empty description.
func (r *ExtractionRequest) Validate() error {
	return validate.Struct(r)
}

// SkillList is the model reply and the success body of POST /extract-skills.
// Order is the order the model returned.
type SkillList struct {
	Skills []string `json:"skills"`
}

// EmptySkillList returns a SkillList that encodes as {"skills": []}.
func EmptySkillList() SkillList {
	return SkillList{Skills: []string{}}
}

// ErrorResponse is the body of every non-200 reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
