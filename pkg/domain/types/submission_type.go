package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SubmissionType tells whether a meeting note is about a new client or a
// follow-up with an existing one
type SubmissionType string

const (
	SubmissionTypeNew      SubmissionType = "new"
	SubmissionTypeFollowUp SubmissionType = "followup"
)

// AllSubmissionTypes returns all valid submission types
func AllSubmissionTypes() []SubmissionType {
	return []SubmissionType{
		SubmissionTypeNew,
		SubmissionTypeFollowUp,
	}
}

// IsValid checks if the submission type is valid
func (s SubmissionType) IsValid() bool {
	switch s {
	case SubmissionTypeNew,
		SubmissionTypeFollowUp:
		return true
	default:
		return false
	}
}

// IsNew reports whether the submission is for a new client
func (s SubmissionType) IsNew() bool {
	return s == SubmissionTypeNew
}

// Header returns the first word of the SMART Comment for this type
func (s SubmissionType) Header() string {
	if s == SubmissionTypeFollowUp {
		return "FOLLOW-UP"
	}
	return "NEW"
}

// String returns the string representation of the submission type
func (s SubmissionType) String() string {
	return string(s)
}

var submissionTypeAliases = map[string]SubmissionType{
	"":            SubmissionTypeNew,
	"new":         SubmissionTypeNew,
	"nuevo":       SubmissionTypeNew,
	"nueva":       SubmissionTypeNew,
	"followup":    SubmissionTypeFollowUp,
	"follow-up":   SubmissionTypeFollowUp,
	"follow_up":   SubmissionTypeFollowUp,
	"follow up":   SubmissionTypeFollowUp,
	"seguimiento": SubmissionTypeFollowUp,
}

// ParseSubmissionType parses the form value case-insensitively. Both the
// Spanish form labels and the English names are accepted. An empty value is
// treated as a new client, which is the default of the form.
func ParseSubmissionType(s string) (SubmissionType, error) {
	t, ok := submissionTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", goerr.New("invalid submission type", goerr.V("type", s))
	}
	return t, nil
}
