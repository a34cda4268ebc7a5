package slack

import (
	"context"

	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/domain/types"
)

// Service posts a short notice to Slack after a SMART record is stored
type Service interface {
	// Notify posts the notice to the configured channel and returns the message timestamp
	Notify(ctx context.Context, notice *Notice) (string, error)
}

// Notice is the content of a record-created notification
type Notice struct {
	SubmissionID model.SubmissionID
	Type         types.SubmissionType
	Client       string
	Title        string
	Technology   string
	SmartComment string
	Page         *model.PageRef
}
