package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/smartcomment/pkg/controller/http"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/usecase"
)

type mockSubmission struct {
	calls    int
	submitFn func(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error)
}

func (m *mockSubmission) Submit(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error) {
	m.calls++
	if m.submitFn != nil {
		return m.submitFn(ctx, form)
	}
	return &usecase.SubmitResult{
		SubmissionID: "0192f0a4-0000-7000-8000-000000000001",
		Original:     form,
		Processed: &model.ProcessedRecord{
			Title:        "Kickoff meeting",
			SmartComment: "NEW: A meeting was held with Acme Corp",
		},
		Page: &model.PageRef{ID: "page-1", URL: "https://www.notion.so/page-1"},
	}, nil
}

type mockSearch struct {
	searchFn func(ctx context.Context, query string) (*model.SearchResult, error)
}

func (m *mockSearch) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return &model.SearchResult{Success: true, Query: query, Text: "Title: Acme"}, nil
}

type mockHealth struct {
	verbose []bool
	ok      bool
}

func (m *mockHealth) Check(ctx context.Context, verbose bool) *usecase.HealthReport {
	m.verbose = append(m.verbose, verbose)
	return &usecase.HealthReport{OK: m.ok, Credentials: map[string]bool{"notion_token": m.ok}}
}

type fixture struct {
	submission *mockSubmission
	search     *mockSearch
	health     *mockHealth
	server     *httpctrl.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		submission: &mockSubmission{},
		search:     &mockSearch{},
		health:     &mockHealth{ok: true},
	}

	srv, err := httpctrl.New(
		httpctrl.WithSubmission(f.submission),
		httpctrl.WithSearch(f.search),
		httpctrl.WithHealth(f.health),
	)
	gt.NoError(t, err).Required()
	f.server = srv
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
	return body
}

func TestNew_RequiresUseCases(t *testing.T) {
	_, err := httpctrl.New()
	gt.Error(t, err)
}

func TestSubmit(t *testing.T) {
	const payload = `{"formData":{"type":"nuevo","client":"Acme Corp","title":"Kickoff meeting","description":"Discussed FortiGate deployment"}}`

	for _, path := range []string{"/api/submit-form", "/submit"} {
		t.Run("success on "+path, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(http.MethodPost, path, payload)

			gt.V(t, w.Code).Equal(http.StatusOK)
			body := decode(t, w)
			gt.V(t, body["success"]).Equal(true)
			gt.V(t, body["pageId"]).Equal("page-1")
			gt.V(t, body["pageUrl"]).Equal("https://www.notion.so/page-1")
			gt.V(t, body["submissionId"]).Equal("0192f0a4-0000-7000-8000-000000000001")
			gt.S(t, body["message"].(string)).Contains("Notion")

			original := body["original"].(map[string]any)
			gt.V(t, original["client"]).Equal("Acme Corp")
			processed := body["processed"].(map[string]any)
			gt.V(t, processed["smart_comment"]).Equal("NEW: A meeting was held with Acme Corp")
		})
	}

	t.Run("malformed JSON is 400 without calling the pipeline", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/submit-form", `{"formData":`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)
		body := decode(t, w)
		gt.V(t, body["success"]).Equal(false)
		gt.S(t, body["error"].(string)).HasPrefix("validation error: malformed JSON body")
		gt.V(t, f.submission.calls).Equal(0)
	})

	t.Run("validation error is 400", func(t *testing.T) {
		f := newFixture(t)
		f.submission.submitFn = func(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error) {
			return nil, form.Validate()
		}
		w := f.do(http.MethodPost, "/submit", `{"formData":{"type":"nuevo","client":"Acme Corp","title":"Kickoff meeting"}}`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)
		body := decode(t, w)
		gt.V(t, body["error"]).Equal("validation error: missing required fields: description")
	})

	t.Run("summarization error is 500", func(t *testing.T) {
		f := newFixture(t)
		f.submission.submitFn = func(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error) {
			return nil, goerr.Wrap(model.ErrSummarization, "failed to generate content from LLM: upstream unavailable")
		}
		w := f.do(http.MethodPost, "/api/submit-form", payload)

		gt.V(t, w.Code).Equal(http.StatusInternalServerError)
		body := decode(t, w)
		gt.V(t, body["success"]).Equal(false)
		gt.V(t, body["error"]).Equal("summarization error: failed to generate content from LLM: upstream unavailable")
	})

	t.Run("persistence error is 500", func(t *testing.T) {
		f := newFixture(t)
		f.submission.submitFn = func(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error) {
			return nil, goerr.Wrap(model.ErrPersistence, "status 400: Cliente is not a property that exists.")
		}
		w := f.do(http.MethodPost, "/api/submit-form", payload)

		gt.V(t, w.Code).Equal(http.StatusInternalServerError)
		gt.S(t, decode(t, w)["error"].(string)).HasPrefix("persistence error: status 400")
	})

	t.Run("unknown error is 500", func(t *testing.T) {
		f := newFixture(t)
		f.submission.submitFn = func(ctx context.Context, form *model.SubmissionForm) (*usecase.SubmitResult, error) {
			return nil, errors.New("boom")
		}
		w := f.do(http.MethodPost, "/api/submit-form", payload)
		gt.V(t, w.Code).Equal(http.StatusInternalServerError)
		gt.V(t, decode(t, w)["error"]).Equal("boom")
	})
}

func TestSearchClient(t *testing.T) {
	for _, path := range []string{"/api/search-client", "/search-client"} {
		t.Run("success on "+path, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(http.MethodPost, path, `{"query":"Acme Corp"}`)

			gt.V(t, w.Code).Equal(http.StatusOK)
			body := decode(t, w)
			gt.V(t, body["success"]).Equal(true)
			gt.V(t, body["query"]).Equal("Acme Corp")
			gt.V(t, body["results"]).Equal("Title: Acme")
		})
	}

	t.Run("empty query is 400", func(t *testing.T) {
		f := newFixture(t)
		f.search.searchFn = func(ctx context.Context, query string) (*model.SearchResult, error) {
			return nil, goerr.Wrap(model.ErrValidation, "query is required")
		}
		w := f.do(http.MethodPost, "/api/search-client", `{"query":""}`)

		gt.V(t, w.Code).Equal(http.StatusBadRequest)
		gt.V(t, decode(t, w)["error"]).Equal("validation error: query is required")
	})

	t.Run("soft search failure is still 200", func(t *testing.T) {
		f := newFixture(t)
		f.search.searchFn = func(ctx context.Context, query string) (*model.SearchResult, error) {
			return &model.SearchResult{Success: false, Query: query, Text: "Web search error: status 403"}, nil
		}
		w := f.do(http.MethodPost, "/api/search-client", `{"query":"Acme"}`)

		gt.V(t, w.Code).Equal(http.StatusOK)
		gt.V(t, decode(t, w)["success"]).Equal(false)
	})
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		ok          bool
		wantStatus  int
		wantVerbose bool
	}{
		{name: "api test defaults to verbose", path: "/api/test", ok: true, wantStatus: http.StatusOK, wantVerbose: true},
		{name: "api test verbose disabled", path: "/api/test?verbose=false", ok: true, wantStatus: http.StatusOK, wantVerbose: false},
		{name: "health defaults to quick", path: "/health", ok: true, wantStatus: http.StatusOK, wantVerbose: false},
		{name: "health verbose", path: "/health?verbose=true", ok: true, wantStatus: http.StatusOK, wantVerbose: true},
		{name: "unhealthy is 503", path: "/health", ok: false, wantStatus: http.StatusServiceUnavailable, wantVerbose: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.health.ok = tt.ok
			w := f.do(http.MethodGet, tt.path, "")

			gt.V(t, w.Code).Equal(tt.wantStatus)
			gt.A(t, f.health.verbose).Length(1).Required()
			gt.V(t, f.health.verbose[0]).Equal(tt.wantVerbose)
			gt.V(t, decode(t, w)["ok"]).Equal(tt.ok)
		})
	}
}

func TestStaticRoutes(t *testing.T) {
	f := newFixture(t)

	t.Run("status is plain text", func(t *testing.T) {
		w := f.do(http.MethodGet, "/status", "")
		gt.V(t, w.Code).Equal(http.StatusOK)
		gt.V(t, w.Body.String()).Equal("¡Servidor SMART funcionando! 🚀")
	})

	t.Run("form redirects to root", func(t *testing.T) {
		w := f.do(http.MethodGet, "/form", "")
		gt.V(t, w.Code).Equal(http.StatusFound)
		gt.V(t, w.Header().Get("Location")).Equal("/")
	})

	t.Run("root serves the form", func(t *testing.T) {
		w := f.do(http.MethodGet, "/", "")
		gt.V(t, w.Code).Equal(http.StatusOK)
		gt.B(t, strings.Contains(w.Body.String(), "/api/submit-form")).True()
	})

	t.Run("unknown path falls back to the form", func(t *testing.T) {
		w := f.do(http.MethodGet, "/unknown/page", "")
		gt.V(t, w.Code).Equal(http.StatusOK)
		gt.S(t, w.Body.String()).Contains("<form")
	})
}
