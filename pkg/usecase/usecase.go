package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/smartcomment/pkg/service/brief"
	"github.com/secmon-lab/smartcomment/pkg/service/notion"
	"github.com/secmon-lab/smartcomment/pkg/service/search"
	"github.com/secmon-lab/smartcomment/pkg/service/slack"
	"github.com/secmon-lab/smartcomment/pkg/service/summary"
)

// DefaultActivityLimit is how many earlier records are read back for a follow-up
const DefaultActivityLimit = 5

type UseCases struct {
	notion   notion.Service
	search   search.Service
	brief    brief.Service
	summary  summary.Service
	notifier slack.Service
	llm      gollem.LLMClient

	credentials   Credentials
	activityLimit int
	now           func() time.Time

	Submission *SubmissionUseCase
	Search     *SearchUseCase
	Health     *HealthUseCase
}

type Option func(*UseCases)

func WithNotion(svc notion.Service) Option {
	return func(uc *UseCases) {
		uc.notion = svc
	}
}

func WithSearch(svc search.Service) Option {
	return func(uc *UseCases) {
		uc.search = svc
	}
}

func WithBrief(svc brief.Service) Option {
	return func(uc *UseCases) {
		uc.brief = svc
	}
}

func WithSummary(svc summary.Service) Option {
	return func(uc *UseCases) {
		uc.summary = svc
	}
}

// WithNotifier enables the Slack notice after a record is stored
func WithNotifier(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

// WithLLMClient sets the client used by the live health check
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llm = client
	}
}

// WithCredentials records which credentials were supplied at start-up
func WithCredentials(c Credentials) Option {
	return func(uc *UseCases) {
		uc.credentials = c
	}
}

// WithActivityLimit sets how many earlier records a follow-up reads back. Zero disables it.
func WithActivityLimit(n int) Option {
	return func(uc *UseCases) {
		uc.activityLimit = n
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		activityLimit: DefaultActivityLimit,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Submission = NewSubmissionUseCase(uc)
	uc.Search = NewSearchUseCase(uc.search)
	uc.Health = NewHealthUseCase(uc)

	return uc
}
