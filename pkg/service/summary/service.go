package summary

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
)

// Input is everything the summarizer knows about one submission
type Input struct {
	Submission *model.Submission
	// Brief is the generated client brief; empty for follow-ups
	Brief string
	// Activity holds earlier SMART Comments of the same client, newest first
	Activity []*model.Activity
}

// Service turns a meeting note into a ProcessedRecord
type Service interface {
	Summarize(ctx context.Context, input Input) (*model.ProcessedRecord, error)
}

// client implements Service interface
type client struct {
	llmClient gollem.LLMClient
	timeout   time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithTimeout sets the timeout of the LLM call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// New creates a new summary service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
		timeout:   60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Summarize asks the LLM for a ProcessedRecord. Any failure, including an
// answer that is not the expected JSON object, is wrapped in
// model.ErrSummarization.
func (c *client) Summarize(ctx context.Context, input Input) (*model.ProcessedRecord, error) {
	if input.Submission == nil {
		return nil, goerr.Wrap(model.ErrSummarization, "submission is required")
	}
	sub := input.Submission

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(responseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSummarization, "failed to create LLM session: "+err.Error(),
			goerr.V(model.SubmissionIDKey, sub.ID))
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(buildUserPrompt(input))})
	if err != nil {
		return nil, goerr.Wrap(model.ErrSummarization, "failed to generate content from LLM: "+err.Error(),
			goerr.V(model.SubmissionIDKey, sub.ID))
	}

	text := strings.Join(resp.Texts, "")
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(model.ErrSummarization, "LLM returned an empty response",
			goerr.V(model.SubmissionIDKey, sub.ID))
	}

	processed, err := ParseResponse(text)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSummarization, err.Error(),
			goerr.V(model.SubmissionIDKey, sub.ID),
			goerr.V(model.LLMResponseKey, text))
	}

	if !sub.IsNew() {
		processed.ClientBrief = model.NotApplicableBrief
	}

	if err := processed.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrSummarization, "invalid LLM response: "+err.Error(),
			goerr.V(model.SubmissionIDKey, sub.ID),
			goerr.V(model.LLMResponseKey, text))
	}

	return processed, nil
}

// ParseResponse decodes the JSON object returned by the LLM. A markdown code
// fence around the object is tolerated.
func ParseResponse(text string) (*model.ProcessedRecord, error) {
	body := stripCodeFence(text)

	processed, err := model.DecodeProcessedRecord([]byte(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response")
	}
	return processed, nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```json
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// responseSchema creates the JSON schema for structured output
func responseSchema() *gollem.Parameter {
	str := func(desc string, required bool) *gollem.Parameter {
		return &gollem.Parameter{Type: gollem.TypeString, Description: desc, Required: required}
	}

	return &gollem.Parameter{
		Title:       "SmartCommentResponse",
		Description: "Translated and structured meeting note",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"title":                str("Title translated to English and improved", true),
			"description":          str("Short technical description in English", true),
			"technology":           str("Technology in standard product naming", true),
			"smart_comment":        str("Complete SMART Comment following the required format", true),
			"client_brief":         str("Client brief in English, or N/A - Follow-up", true),
			"next_actions":         str("Specific next steps in English", true),
			"recommended_smart_id": str("Suggested SMART ID if none was provided", false),
			"technical_focus":      str("Main technical area, e.g. Endpoint Security, Network Security, Cloud Security", true),
		},
	}
}
