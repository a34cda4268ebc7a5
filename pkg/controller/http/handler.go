package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/utils/errutil"
	"github.com/secmon-lab/smartcomment/pkg/utils/safe"
)

const (
	maxRequestBody = 1 << 20

	submitSuccessMessage = "¡Datos procesados y enviados a Notion exitosamente!"
	statusMessage        = "¡Servidor SMART funcionando! 🚀"
)

// errorKinds are moved to the front of user-facing error messages
var errorKinds = []error{
	model.ErrValidation,
	model.ErrSummarization,
	model.ErrPersistence,
	model.ErrSearch,
}

type submitRequest struct {
	FormData *model.SubmissionForm `json:"formData"`
}

type submitResponse struct {
	Success      bool                   `json:"success"`
	Message      string                 `json:"message"`
	SubmissionID string                 `json:"submissionId"`
	Original     *model.SubmissionForm  `json:"original"`
	Processed    *model.ProcessedRecord `json:"processed"`
	PageID       string                 `json:"pageId"`
	PageURL      string                 `json:"pageUrl"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// statusOf maps pipeline error kinds to HTTP status codes
func statusOf(err error) int {
	if errors.Is(err, model.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err), errorKinds...)
}

// decodeJSON reads the request body into v. Malformed bodies are validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v); err != nil {
		return goerr.Wrap(model.ErrValidation, "malformed JSON body: "+err.Error())
	}
	return nil
}

func submitHandler(uc SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		result, err := uc.Submit(r.Context(), req.FormData)
		if err != nil {
			handleError(w, r, err)
			return
		}

		resp := submitResponse{
			Success:      true,
			Message:      submitSuccessMessage,
			SubmissionID: result.SubmissionID.String(),
			Original:     result.Original,
			Processed:    result.Processed,
		}
		if result.Page != nil {
			resp.PageID = result.Page.ID
			resp.PageURL = result.Page.URL
		}

		safe.WriteJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func searchHandler(uc SearchUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		result, err := uc.Search(r.Context(), req.Query)
		if err != nil {
			handleError(w, r, err)
			return
		}

		safe.WriteJSON(r.Context(), w, http.StatusOK, result)
	}
}

// healthHandler runs live checks when ?verbose is true, or by default when verboseDefault is set
func healthHandler(uc HealthUseCase, verboseDefault bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verbose := verboseDefault
		if v := r.URL.Query().Get("verbose"); v != "" {
			if parsed, err := strconv.ParseBool(v); err == nil {
				verbose = parsed
			}
		}

		report := uc.Check(r.Context(), verbose)

		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		safe.WriteJSON(r.Context(), w, status, report)
	}
}

func statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	safe.Write(r.Context(), w, []byte(statusMessage))
}
