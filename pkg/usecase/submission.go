package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/service/slack"
	"github.com/secmon-lab/smartcomment/pkg/service/summary"
	"github.com/secmon-lab/smartcomment/pkg/utils/async"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
)

// SubmitResult is what a successful submission returns to the caller
type SubmitResult struct {
	SubmissionID model.SubmissionID
	Original     *model.SubmissionForm
	Processed    *model.ProcessedRecord
	Page         *model.PageRef
}

// SubmissionUseCase runs the meeting note pipeline
type SubmissionUseCase struct {
	uc *UseCases
}

// NewSubmissionUseCase creates a new SubmissionUseCase instance
func NewSubmissionUseCase(uc *UseCases) *SubmissionUseCase {
	return &SubmissionUseCase{uc: uc}
}

// Submit validates the form, enriches it, summarizes it and stores it as a
// Notion page. The first failing stage ends the pipeline. Nothing outside the
// process is called before validation passes.
func (x *SubmissionUseCase) Submit(ctx context.Context, form *model.SubmissionForm) (*SubmitResult, error) {
	if form == nil {
		return nil, goerr.Wrap(model.ErrValidation, "form data is required")
	}

	sub, err := form.ToSubmission()
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With(slog.String("submission_id", sub.ID.String()))
	ctx = logging.With(ctx, logger)
	logger.Info("submission accepted",
		slog.String("type", sub.Type.String()),
		slog.String("client", sub.Client),
	)

	if x.uc.summary == nil {
		return nil, goerr.Wrap(model.ErrSummarization, "LLM is not configured",
			goerr.V(model.SubmissionIDKey, sub.ID), goerr.V(StageKey, "summary"))
	}
	if x.uc.notion == nil {
		return nil, goerr.Wrap(model.ErrPersistence, "Notion is not configured",
			goerr.V(model.SubmissionIDKey, sub.ID), goerr.V(StageKey, "persist"))
	}

	input := summary.Input{Submission: sub}
	if sub.IsNew() {
		input.Brief = x.generateBrief(ctx, sub)
	} else {
		input.Activity = x.recentActivity(ctx, sub)
	}

	processed, err := x.uc.summary.Summarize(ctx, input)
	if err != nil {
		return nil, err
	}
	logger.Debug("submission summarized", slog.String("title", processed.Title))

	page, err := x.uc.notion.CreateSmartPage(ctx, sub, processed, x.uc.now())
	if err != nil {
		return nil, err
	}
	logger.Info("SMART record stored",
		slog.String("page_id", page.ID),
		slog.String("page_url", page.URL),
	)

	x.notify(ctx, sub, processed, page)

	return &SubmitResult{
		SubmissionID: sub.ID,
		Original:     form,
		Processed:    processed,
		Page:         page,
	}, nil
}

func (x *SubmissionUseCase) generateBrief(ctx context.Context, sub *model.Submission) string {
	if x.uc.brief == nil {
		return ""
	}
	return x.uc.brief.Generate(ctx, sub.Client)
}

// recentActivity is best-effort: a failed lookup only loses context
func (x *SubmissionUseCase) recentActivity(ctx context.Context, sub *model.Submission) []*model.Activity {
	if x.uc.activityLimit <= 0 || sub.Technology == "" {
		return nil
	}

	activity, err := x.uc.notion.RecentActivity(ctx, sub.Client, sub.Technology, x.uc.activityLimit)
	if err != nil {
		logging.From(ctx).Warn("failed to read recent activity", "error", err)
		return nil
	}
	return activity
}

func (x *SubmissionUseCase) notify(ctx context.Context, sub *model.Submission, processed *model.ProcessedRecord, page *model.PageRef) {
	if x.uc.notifier == nil {
		return
	}

	notice := &slack.Notice{
		SubmissionID: sub.ID,
		Type:         sub.Type,
		Client:       sub.Client,
		Title:        processed.Title,
		Technology:   processed.Technology,
		SmartComment: processed.SmartComment,
		Page:         page,
	}

	notifier := x.uc.notifier
	async.Dispatch(ctx, "slack-notify", func(ctx context.Context) error {
		_, err := notifier.Notify(ctx, notice)
		return err
	})
}
