package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/smartcomment/pkg/domain/types"
)

func TestParseSubmissionType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.SubmissionType
		wantErr bool
	}{
		{name: "spanish new lowercase", input: "nuevo", want: types.SubmissionTypeNew},
		{name: "spanish new capitalized", input: "Nuevo", want: types.SubmissionTypeNew},
		{name: "english new upper", input: "NEW", want: types.SubmissionTypeNew},
		{name: "empty defaults to new", input: "", want: types.SubmissionTypeNew},
		{name: "spanish follow-up", input: "seguimiento", want: types.SubmissionTypeFollowUp},
		{name: "spanish follow-up capitalized", input: "Seguimiento", want: types.SubmissionTypeFollowUp},
		{name: "english follow-up with dash", input: "Follow-Up", want: types.SubmissionTypeFollowUp},
		{name: "surrounding spaces", input: "  followup ", want: types.SubmissionTypeFollowUp},
		{name: "unknown value", input: "closed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseSubmissionType(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, got).Equal(tt.want)
		})
	}
}

func TestSubmissionType_Header(t *testing.T) {
	gt.V(t, types.SubmissionTypeNew.Header()).Equal("NEW")
	gt.V(t, types.SubmissionTypeFollowUp.Header()).Equal("FOLLOW-UP")
}

func TestSubmissionType_IsValid(t *testing.T) {
	for _, s := range types.AllSubmissionTypes() {
		gt.B(t, s.IsValid()).True()
	}
	gt.B(t, types.SubmissionType("nuevo").IsValid()).False()
	gt.B(t, types.SubmissionType("").IsValid()).False()
}
