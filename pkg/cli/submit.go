package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
	"github.com/secmon-lab/smartcomment/pkg/utils/async"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"github.com/secmon-lab/smartcomment/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const notifyWaitTimeout = 30 * time.Second

type submitOutput struct {
	SubmissionID string                 `json:"submissionId"`
	Processed    *model.ProcessedRecord `json:"processed"`
	PageID       string                 `json:"pageId"`
	PageURL      string                 `json:"pageUrl"`
}

func cmdSubmit() *cli.Command {
	var input string
	var pipeline pipelineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "JSON file with the form data, or - for stdin",
			Value:       "-",
			Destination: &input,
		},
	}
	flags = append(flags, pipeline.Flags()...)

	return &cli.Command{
		Name:  "submit",
		Usage: "Process one meeting note and store it in Notion",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			form, err := readForm(ctx, input, c.Root().Reader)
			if err != nil {
				return err
			}

			uc, err := pipeline.Build(ctx)
			if err != nil {
				return err
			}

			return runSubmit(ctx, uc, form, c.Root().Writer)
		},
	}
}

// runSubmit processes one form and prints the result. Pending notifications
// are awaited so the process does not exit before they are sent.
func runSubmit(ctx context.Context, uc *usecase.UseCases, form *model.SubmissionForm, w io.Writer) error {
	result, err := uc.Submission.Submit(ctx, form)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, notifyWaitTimeout)
	defer cancel()
	if err := async.Wait(waitCtx); err != nil {
		logging.From(ctx).Warn("notification did not finish", "error", err)
	}

	out := submitOutput{
		SubmissionID: result.SubmissionID.String(),
		Processed:    result.Processed,
	}
	if result.Page != nil {
		out.PageID = result.Page.ID
		out.PageURL = result.Page.URL
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}

// readForm accepts both the HTTP body shape {"formData": {...}} and a bare form
func readForm(ctx context.Context, path string, stdin io.Reader) (*model.SubmissionForm, error) {
	var r io.Reader
	if path == "-" || path == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		r = stdin
	} else {
		// #nosec G304 - path is provided by CLI argument
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input", goerr.V("path", path))
		}
		defer safe.Close(ctx, f)
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input")
	}

	var wrapped struct {
		FormData *model.SubmissionForm `json:"formData"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "malformed JSON input: "+err.Error())
	}
	if wrapped.FormData != nil {
		return wrapped.FormData, nil
	}

	var form model.SubmissionForm
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "malformed JSON input: "+err.Error())
	}
	return &form, nil
}
