package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
	"github.com/secmon-lab/smartcomment/pkg/service/notion"
	"github.com/secmon-lab/smartcomment/pkg/service/slack"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"OK"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	mu    sync.Mutex
	calls int

	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return &mockLLMSession{
		generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
			c.mu.Lock()
			c.calls++
			c.mu.Unlock()

			var prompt string
			for _, in := range input {
				if txt, ok := in.(gollem.Text); ok {
					prompt += string(txt)
				}
			}

			if c.generateFn == nil {
				return &gollem.Response{Texts: []string{"OK"}}, nil
			}
			text, err := c.generateFn(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return &gollem.Response{Texts: []string{text}}, nil
		},
	}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func (c *mockLLMClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// summaryLLM answers like a well-behaved model: the header follows the
// template found in the prompt and the brief placeholder is echoed back
func summaryLLM() *mockLLMClient {
	return &mockLLMClient{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			header := "NEW"
			brief := "Acme Corp is a manufacturer based in Mexico."
			if strings.Contains(prompt, "FOLLOW-UP: A meeting was held") {
				header = "FOLLOW-UP"
				brief = model.NotApplicableBrief
			}

			rec := model.ProcessedRecord{
				Title:          "Kickoff meeting",
				Description:    "FortiGate deployment discussion",
				Technology:     "FortiGate",
				SmartComment:   header + ": A meeting was held with Acme Corp to review the deployment.",
				ClientBrief:    brief,
				NextActions:    "1.- Send proposal",
				TechnicalFocus: "Network Security",
			}
			raw, err := json.Marshal(rec)
			return string(raw), err
		},
	}
}

type mockSearch struct {
	mu      sync.Mutex
	queries []string
	result  *model.SearchResult
}

func (m *mockSearch) Search(ctx context.Context, query string) *model.SearchResult {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.result != nil {
		return m.result
	}
	return &model.SearchResult{Success: true, Query: query, Text: "Title: Acme\nDescription: Manufacturer\nSource: https://acme.example.com"}
}

func (m *mockSearch) Configured() bool { return true }

func (m *mockSearch) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

type mockNotion struct {
	mu         sync.Mutex
	created    []propertyNames
	activityIn []string

	createFn   func(ctx context.Context, sub *model.Submission, processed *model.ProcessedRecord) (*model.PageRef, error)
	activityFn func(ctx context.Context, client, technology string, limit int) ([]*model.Activity, error)
	titleFn    func(ctx context.Context) (string, error)
	missingFn  func(ctx context.Context) ([]string, error)
}

// propertyNames keeps the property names that would have been sent
type propertyNames map[string]bool

func (m *mockNotion) CreateSmartPage(ctx context.Context, sub *model.Submission, processed *model.ProcessedRecord, processedAt time.Time) (*model.PageRef, error) {
	props := notion.BuildProperties(notion.DefaultSchema(), sub, processed, processedAt)
	names := propertyNames{}
	for k := range props {
		names[k] = true
	}

	m.mu.Lock()
	m.created = append(m.created, names)
	m.mu.Unlock()

	if m.createFn != nil {
		return m.createFn(ctx, sub, processed)
	}
	return &model.PageRef{ID: "page-1", URL: "https://www.notion.so/page-1"}, nil
}

func (m *mockNotion) RecentActivity(ctx context.Context, client, technology string, limit int) ([]*model.Activity, error) {
	m.mu.Lock()
	m.activityIn = append(m.activityIn, client+"/"+technology)
	m.mu.Unlock()

	if m.activityFn != nil {
		return m.activityFn(ctx, client, technology, limit)
	}
	return nil, nil
}

func (m *mockNotion) DatabaseTitle(ctx context.Context) (string, error) {
	if m.titleFn != nil {
		return m.titleFn(ctx)
	}
	return "SMART Log", nil
}

func (m *mockNotion) MissingProperties(ctx context.Context) ([]string, error) {
	if m.missingFn != nil {
		return m.missingFn(ctx)
	}
	return nil, nil
}

func (m *mockNotion) Created() []propertyNames {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]propertyNames(nil), m.created...)
}

type mockNotifier struct {
	notices chan *slack.Notice
	err     error
}

func (m *mockNotifier) Notify(ctx context.Context, notice *slack.Notice) (string, error) {
	m.notices <- notice
	return "1700000000.000100", m.err
}
