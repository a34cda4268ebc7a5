package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/smartcomment/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// HealthSearchQuery is the query used by the live search check
	HealthSearchQuery = "test empresa Mexico"

	healthPingPrompt   = "Reply only: OK"
	healthCheckTimeout = 20 * time.Second
)

// Credentials records which secrets were supplied at start-up. Values are
// never kept here, only their presence.
type Credentials struct {
	NotionToken      bool
	NotionDatabaseID bool
	LLMAPIKey        bool
	SearchAPIKey     bool
	SearchEngineID   bool
}

// Missing returns the names of required credentials that are absent.
// Search credentials are optional because search is best-effort.
func (c Credentials) Missing() []string {
	var missing []string
	if !c.NotionToken {
		missing = append(missing, "notion_token")
	}
	if !c.NotionDatabaseID {
		missing = append(missing, "notion_database_id")
	}
	if !c.LLMAPIKey {
		missing = append(missing, "llm_api_key")
	}
	return missing
}

func (c Credentials) asMap() map[string]bool {
	return map[string]bool{
		"notion_token":       c.NotionToken,
		"notion_database_id": c.NotionDatabaseID,
		"llm_api_key":        c.LLMAPIKey,
		"search_api_key":     c.SearchAPIKey,
		"search_engine_id":   c.SearchEngineID,
	}
}

// CheckResult is the outcome of one live round-trip
type CheckResult struct {
	Name     string        `json:"name"`
	OK       bool          `json:"ok"`
	Detail   string        `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// HealthReport summarizes configuration and, when verbose, connectivity
type HealthReport struct {
	OK          bool            `json:"ok"`
	Credentials map[string]bool `json:"credentials"`
	Missing     []string        `json:"missing,omitempty"`
	Database    string          `json:"database,omitempty"`
	Checks      []*CheckResult  `json:"checks,omitempty"`
}

// HealthUseCase reports whether the service can do its job
type HealthUseCase struct {
	uc *UseCases
}

// NewHealthUseCase creates a new HealthUseCase instance
func NewHealthUseCase(uc *UseCases) *HealthUseCase {
	return &HealthUseCase{uc: uc}
}

// Check reports credential presence. With verbose it also calls Notion, the
// LLM and the search provider concurrently; every check must pass for OK.
func (x *HealthUseCase) Check(ctx context.Context, verbose bool) *HealthReport {
	report := &HealthReport{
		Credentials: x.uc.credentials.asMap(),
		Missing:     x.uc.credentials.Missing(),
	}
	report.OK = len(report.Missing) == 0

	if !verbose {
		return report
	}

	notionCheck := &CheckResult{Name: "notion"}
	llmCheck := &CheckResult{Name: "llm"}
	searchCheck := &CheckResult{Name: "search"}
	report.Checks = []*CheckResult{notionCheck, llmCheck, searchCheck}

	var eg errgroup.Group
	eg.Go(func() error {
		runCheck(ctx, notionCheck, func(ctx context.Context) (string, error) {
			if x.uc.notion == nil {
				return "", goerr.New("Notion is not configured")
			}
			title, err := x.uc.notion.DatabaseTitle(ctx)
			if err != nil {
				return "", err
			}
			report.Database = title
			return title, nil
		})
		return nil
	})
	eg.Go(func() error {
		runCheck(ctx, llmCheck, func(ctx context.Context) (string, error) {
			return pingLLM(ctx, x.uc.llm)
		})
		return nil
	})
	eg.Go(func() error {
		runCheck(ctx, searchCheck, func(ctx context.Context) (string, error) {
			if x.uc.search == nil {
				return "", goerr.New("search is not configured")
			}
			result := x.uc.search.Search(ctx, HealthSearchQuery)
			if !result.Success {
				return "", goerr.New(result.Text)
			}
			return "connected", nil
		})
		return nil
	})
	_ = eg.Wait()

	for _, c := range report.Checks {
		if !c.OK {
			report.OK = false
		}
	}

	return report
}

func runCheck(ctx context.Context, result *CheckResult, fn func(ctx context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	detail, err := fn(ctx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err.Error()
		logging.From(ctx).Warn("health check failed", "check", result.Name, "error", err)
		return
	}
	result.OK = true
	result.Detail = detail
}

func pingLLM(ctx context.Context, client gollem.LLMClient) (string, error) {
	if client == nil {
		return "", goerr.New("LLM is not configured")
	}

	session, err := client.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(healthPingPrompt)})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, ""))
	if text == "" {
		return "", goerr.New("LLM returned an empty response")
	}
	return text, nil
}

// CheckSchema returns the configured Notion property names the database lacks
func (x *HealthUseCase) CheckSchema(ctx context.Context) ([]string, error) {
	if x.uc.notion == nil {
		return nil, goerr.New("Notion is not configured")
	}
	missing, err := x.uc.notion.MissingProperties(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check Notion schema")
	}
	return missing, nil
}
