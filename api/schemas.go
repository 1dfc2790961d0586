package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/jobboard/internal/apperr"
)

// Request body schemas. Bodies are checked before decoding so a value of the
// wrong JSON type is rejected instead of being coerced or dropped.
var (
	tokenRequestSchema = mustSchema(`{
		"type": "object",
		"required": ["email"],
		"properties": {
			"email": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"password": {"type": "string"}
		}
	}`)

	roleRequestSchema = mustSchema(`{
		"type": "object",
		"required": ["role"],
		"properties": {
			"role": {"type": "string", "enum": ["applicant", "employer", "admin"]}
		}
	}`)

	registrationSchema = mustSchema(`{
		"type": "object",
		"required": ["email"],
		"properties": {
			"email": {"type": "string", "minLength": 3},
			"name": {"type": "string"},
			"photoURL": {"type": "string"},
			"role": {"type": "string", "enum": ["applicant", "employer"]},
			"password": {"type": "string"},
			"profile": {"type": "object"}
		}
	}`)

	profileUpdateSchema = mustSchema(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"photoURL": {"type": "string"},
			"profile": {"type": "object"}
		}
	}`)

	newJobSchema = mustSchema(`{
		"type": "object",
		"required": ["title", "applicationDeadline"],
		"properties": {
			"title": {"type": "string", "minLength": 1},
			"applicationDeadline": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
			"jobData": {"type": "object"}
		}
	}`)

	proposalSchema = mustSchema(`{"type": "object", "minProperties": 1}`)
)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return rs
}

// validateBody checks body against rs and reports the first violation as
// invalid input.
func validateBody(ctx context.Context, rs *jsonschema.Schema, body []byte) error {
	errs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return apperr.Wrap(apperr.ErrInvalidInput, "Invalid request", err)
	}
	if len(errs) > 0 {
		return apperr.New(apperr.ErrInvalidInput, errs[0].Error())
	}
	return nil
}

// decodeValid reads the body, validates it against rs and decodes it into v.
func decodeValid(ctx context.Context, rs *jsonschema.Schema, body []byte, v any) error {
	if err := validateBody(ctx, rs, body); err != nil {
		return err
	}
	return decodeJSON(body, v)
}
