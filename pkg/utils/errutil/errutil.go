package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"github.com/secmon-lab/smartcomment/pkg/utils/safe"
)

// ErrorResponse is the failure envelope returned by every JSON endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handle logs err with its goerr values and stack, and reports it to Sentry
// when a client is configured.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(ctx, err, msg)
}

// HandleHTTP writes the failure envelope with statusCode. 5xx errors go
// through Handle; 4xx errors are logged at warn level only. When err matches
// one of kinds, the envelope message is "<kind>: <cause>".
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, kinds ...error) {
	if err == nil {
		return
	}

	if statusCode >= http.StatusInternalServerError {
		Handle(ctx, err, "HTTP error")
	} else {
		logging.From(ctx).Warn("HTTP client error",
			slog.Int("status", statusCode),
			slog.String("error", err.Error()),
		)
	}

	safe.WriteJSON(ctx, w, statusCode, ErrorResponse{
		Success: false,
		Error:   Message(err, kinds...),
	})
}

// Message renders err for users. The first matching kind is moved to the
// front of the message instead of trailing the wrap chain.
func Message(err error, kinds ...error) string {
	msg := err.Error()
	for _, kind := range kinds {
		if kind == nil || !errors.Is(err, kind) {
			continue
		}
		cause := strings.TrimSuffix(msg, ": "+kind.Error())
		if cause == msg || cause == "" {
			return msg
		}
		return kind.Error() + ": " + cause
	}
	return msg
}

func capture(ctx context.Context, err error, msg string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)

		var ge *goerr.Error
		if errors.As(err, &ge) {
			extra := sentry.Context{}
			for k, v := range ge.Values() {
				extra[k] = v
			}
			scope.SetContext("values", extra)
		}

		hub.CaptureException(err)
	})
}
