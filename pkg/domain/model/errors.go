package model

import "github.com/m-mizutani/goerr/v2"

// Pipeline error kinds. Callers match them with errors.Is.
var (
	ErrValidation    = goerr.New("validation error")
	ErrSearch        = goerr.New("search error")
	ErrSummarization = goerr.New("summarization error")
	ErrPersistence   = goerr.New("persistence error")
)

// Context keys for error values
const (
	MissingFieldsKey = "missing_fields"
	SubmissionIDKey  = "submission_id"
	StatusCodeKey    = "status_code"
	ResponseBodyKey  = "response_body"
	LLMResponseKey   = "llm_response"
)
