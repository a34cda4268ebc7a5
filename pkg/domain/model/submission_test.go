package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/domain/types"
)

func validForm() model.SubmissionForm {
	return model.SubmissionForm{
		Type:        "nuevo",
		Client:      "Acme Corp",
		Title:       "Kickoff meeting",
		Description: "Discussed FortiGate deployment",
		Technology:  "FortiGate",
	}
}

func TestSubmissionForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *model.SubmissionForm)
		wantErr bool
	}{
		{
			name:   "valid form",
			modify: func(f *model.SubmissionForm) {},
		},
		{
			name:    "missing client",
			modify:  func(f *model.SubmissionForm) { f.Client = "" },
			wantErr: true,
		},
		{
			name:    "missing title",
			modify:  func(f *model.SubmissionForm) { f.Title = "" },
			wantErr: true,
		},
		{
			name:    "missing description",
			modify:  func(f *model.SubmissionForm) { f.Description = "" },
			wantErr: true,
		},
		{
			name:    "whitespace description",
			modify:  func(f *model.SubmissionForm) { f.Description = "   \n" },
			wantErr: true,
		},
		{
			name:    "unknown type",
			modify:  func(f *model.SubmissionForm) { f.Type = "cerrado" },
			wantErr: true,
		},
		{
			name:   "optional fields may be empty",
			modify: func(f *model.SubmissionForm) { f.Technology = ""; f.Attendees = ""; f.SmartID = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.modify(&form)

			err := form.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.B(t, errors.Is(err, model.ErrValidation)).True()
				return
			}
			gt.NoError(t, err)
		})
	}
}

func TestSubmissionForm_ValidateListsAllMissingFields(t *testing.T) {
	form := model.SubmissionForm{Type: "nuevo"}
	err := form.Validate()
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("client")
	gt.S(t, err.Error()).Contains("title")
	gt.S(t, err.Error()).Contains("description")
}

func TestSubmissionForm_ToSubmission(t *testing.T) {
	form := validForm()
	form.Client = "  Acme Corp  "
	form.SmartID = "12345"
	form.SalesforceID = "SF-001"

	sub, err := form.ToSubmission()
	gt.NoError(t, err).Required()

	gt.V(t, sub.Type).Equal(types.SubmissionTypeNew)
	gt.V(t, sub.Client).Equal("Acme Corp")
	gt.V(t, sub.CaseID).Equal("12345")
	gt.V(t, sub.ExternalCaseID).Equal("SF-001")
	gt.S(t, sub.ID.String()).NotEqual("")
	gt.B(t, sub.IsNew()).True()

	other, err := form.ToSubmission()
	gt.NoError(t, err).Required()
	gt.V(t, other.ID).NotEqual(sub.ID)
}

func TestSubmissionForm_ToSubmissionFollowUp(t *testing.T) {
	form := validForm()
	form.Type = "seguimiento"

	sub, err := form.ToSubmission()
	gt.NoError(t, err).Required()
	gt.V(t, sub.Type).Equal(types.SubmissionTypeFollowUp)
	gt.B(t, sub.IsNew()).False()
}
