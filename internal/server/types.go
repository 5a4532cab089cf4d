package server

import (
	"github.com/leapstack-labs/leapcube/pkg/annotation"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error      string   `json:"error"`
	Kind       string   `json:"kind,omitempty"`
	Column     string   `json:"column,omitempty"`
	Type       string   `json:"type,omitempty"`
	Missing    []string `json:"missing,omitempty"`
	Mismatched []string `json:"mismatched,omitempty"`
}

// ValidationResponse reports shared-dimension validation.
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// TransformRequest asks for an analysis schema to be retargeted.
type TransformRequest struct {
	Schema    string `json:"schema"`
	ModelName string `json:"model_name"`
	// SchemaName and Table identify the table on the configured connection.
	SchemaName string `json:"schema_name,omitempty"`
	Table      string `json:"table"`
}

// TransformResponse carries the rewritten analysis schema.
type TransformResponse struct {
	Schema string `json:"schema"`
}

// CreateModelRequest asks for a model to be generated for a table.
type CreateModelRequest struct {
	ModelName   string            `json:"model_name"`
	SchemaName  string            `json:"schema_name,omitempty"`
	Table       string            `json:"table"`
	Annotations *annotation.Group `json:"annotations,omitempty"`
}

// UpdateModelRequest asks for an existing model to be retargeted.
type UpdateModelRequest struct {
	ModelName  string `json:"model_name"`
	SchemaName string `json:"schema_name,omitempty"`
	Table      string `json:"table"`
	// Domain is the YAML encoding of the model being updated.
	Domain string `json:"domain"`
}

// AnnotationResult is the outcome of one applied annotation.
type AnnotationResult struct {
	Index  int    `json:"index"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ModelResponse carries a generated or updated model.
type ModelResponse struct {
	// Domain is the YAML encoding of the model.
	Domain      string             `json:"domain"`
	Annotations []AnnotationResult `json:"annotations,omitempty"`
}
