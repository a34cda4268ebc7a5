package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/types"
)

// SubmissionID identifies one accepted form submission in logs and responses
type SubmissionID string

// NewSubmissionID returns a time-ordered submission ID
func NewSubmissionID() SubmissionID {
	return SubmissionID(uuid.Must(uuid.NewV7()).String())
}

func (x SubmissionID) String() string {
	return string(x)
}

// SubmissionForm is the meeting note exactly as posted by the form. Field
// names follow the form, so smartId and salesforceId carry the case IDs.
type SubmissionForm struct {
	Type         string `json:"type"`
	Client       string `json:"client"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Technology   string `json:"technology,omitempty"`
	NextSteps    string `json:"nextSteps,omitempty"`
	Attendees    string `json:"attendees,omitempty"`
	SmartID      string `json:"smartId,omitempty"`
	SalesforceID string `json:"salesforceId,omitempty"`
}

// Validate checks that the required fields are present and that the type can
// be parsed. It does not look at the content of any field.
func (f *SubmissionForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Client) == "" {
		missing = append(missing, "client")
	}
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return goerr.Wrap(ErrValidation, "missing required fields: "+strings.Join(missing, ", "),
			goerr.V(MissingFieldsKey, missing))
	}

	if _, err := types.ParseSubmissionType(f.Type); err != nil {
		return goerr.Wrap(ErrValidation, "invalid type: "+f.Type, goerr.V("cause", err.Error()))
	}

	return nil
}

// ToSubmission validates the form and converts it into a Submission with a
// freshly assigned ID
func (f *SubmissionForm) ToSubmission() (*Submission, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	t, err := types.ParseSubmissionType(f.Type)
	if err != nil {
		return nil, goerr.Wrap(ErrValidation, "invalid type", goerr.V("type", f.Type))
	}

	return &Submission{
		ID:             NewSubmissionID(),
		Type:           t,
		Client:         strings.TrimSpace(f.Client),
		Title:          strings.TrimSpace(f.Title),
		Description:    strings.TrimSpace(f.Description),
		Technology:     strings.TrimSpace(f.Technology),
		NextSteps:      strings.TrimSpace(f.NextSteps),
		Attendees:      strings.TrimSpace(f.Attendees),
		CaseID:         strings.TrimSpace(f.SmartID),
		ExternalCaseID: strings.TrimSpace(f.SalesforceID),
	}, nil
}

// Submission is a validated meeting note
type Submission struct {
	ID             SubmissionID
	Type           types.SubmissionType
	Client         string
	Title          string
	Description    string
	Technology     string
	NextSteps      string
	Attendees      string
	CaseID         string
	ExternalCaseID string
}

// IsNew reports whether the submission is about a new client
func (s *Submission) IsNew() bool {
	return s.Type.IsNew()
}
