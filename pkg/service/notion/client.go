package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/smartcomment/pkg/domain/model"
)

// client implements Service interface
type client struct {
	api        *notionapi.Client
	databaseID string
	schema     Schema
	timeout    time.Duration
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithSchema sets the property names of the database
func WithSchema(schema Schema) Option {
	return func(c *client) {
		c.schema = schema.Merge(DefaultSchema())
	}
}

// WithTimeout sets the timeout of one Notion API call
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client used to reach the Notion API
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a new Notion service for the database
func New(token, databaseID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Notion API token is required")
	}
	if databaseID == "" {
		return nil, goerr.New("Notion database ID is required")
	}

	c := &client{
		databaseID: databaseID,
		schema:     DefaultSchema(),
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	clientOpts := []notionapi.ClientOption{
		notionapi.WithRetry(3), // Retry up to 3 times on rate limit (HTTP 429)
	}
	if c.httpClient != nil {
		clientOpts = append(clientOpts, notionapi.WithHTTPClient(c.httpClient))
	}
	c.api = notionapi.NewClient(notionapi.Token(token), clientOpts...)

	return c, nil
}

// CreateSmartPage creates a page in the database with the submission properties
func (c *client) CreateSmartPage(ctx context.Context, sub *model.Submission, processed *model.ProcessedRecord, processedAt time.Time) (*model.PageRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(c.databaseID),
		},
		Properties: BuildProperties(c.schema, sub, processed, processedAt),
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to create Notion page",
			goerr.V(model.SubmissionIDKey, sub.ID),
			goerr.V("database_id", c.databaseID))
	}

	return &model.PageRef{
		ID:  page.ID.String(),
		URL: page.URL,
	}, nil
}

// RecentActivity queries the database for pages of the same client
func (c *client) RecentActivity(ctx context.Context, clientName, technology string, limit int) ([]*model.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var filter notionapi.Filter = notionapi.PropertyFilter{
		Property: c.schema.ClientProperty,
		RichText: &notionapi.TextFilterCondition{Contains: clientName},
	}
	if technology != "" {
		filter = notionapi.AndCompoundFilter{
			filter,
			notionapi.PropertyFilter{
				Property: c.schema.TechnologyProperty,
				RichText: &notionapi.TextFilterCondition{Contains: technology},
			},
		}
	}

	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(c.databaseID), &notionapi.DatabaseQueryRequest{
		Filter: filter,
		Sorts: []notionapi.SortObject{
			{Property: c.schema.ProcessedDateProperty, Direction: notionapi.SortOrderDESC},
		},
		PageSize: limit,
	})
	if err != nil {
		return nil, wrapAPIError(err, "failed to query database",
			goerr.V("client", clientName),
			goerr.V("technology", technology))
	}

	activities := make([]*model.Activity, 0, len(resp.Results))
	for _, page := range resp.Results {
		activities = append(activities, c.toActivity(page))
	}
	return activities, nil
}

// DatabaseTitle retrieves the database title, used as a connectivity check
func (c *client) DatabaseTitle(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(c.databaseID))
	if err != nil {
		return "", wrapAPIError(err, "failed to get database", goerr.V("database_id", c.databaseID))
	}

	var sb strings.Builder
	for _, rt := range db.Title {
		sb.WriteString(rt.PlainText)
	}
	return sb.String(), nil
}

func (c *client) MissingProperties(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	db, err := c.api.Database.Get(ctx, notionapi.DatabaseID(c.databaseID))
	if err != nil {
		return nil, wrapAPIError(err, "failed to get database", goerr.V("database_id", c.databaseID))
	}

	var missing []string
	for _, name := range c.schema.PropertyNames() {
		if _, ok := db.Properties[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (c *client) toActivity(page notionapi.Page) *model.Activity {
	activity := &model.Activity{
		PageID: page.ID.String(),
		URL:    page.URL,
	}

	for name, prop := range page.Properties {
		switch name {
		case c.schema.TitleProperty:
			activity.Title = propertyText(prop)
		case c.schema.SmartCommentProperty:
			activity.SmartComment = propertyText(prop)
		case c.schema.ProcessedDateProperty:
			activity.ProcessedDate = propertyDate(prop)
		}
	}
	return activity
}

// BuildProperties maps a processed submission onto the database properties.
// The client brief property is set only for new clients with a real brief.
func BuildProperties(schema Schema, sub *model.Submission, processed *model.ProcessedRecord, processedAt time.Time) notionapi.Properties {
	typeLabel := schema.FollowUpLabel
	if sub.IsNew() {
		typeLabel = schema.NewLabel
	}

	date := notionapi.Date(truncateToDate(processedAt))

	props := notionapi.Properties{
		schema.TypeProperty: notionapi.SelectProperty{
			Select: notionapi.Option{Name: typeLabel},
		},
		schema.ClientProperty: notionapi.RichTextProperty{
			RichText: RichText(firstNonEmpty(sub.Client, notSpecified)),
		},
		schema.TitleProperty: notionapi.TitleProperty{
			Title: RichText(processed.Title),
		},
		schema.TechnologyProperty: notionapi.RichTextProperty{
			RichText: RichText(firstNonEmpty(processed.Technology, sub.Technology, notSpecified)),
		},
		schema.DescriptionProperty: notionapi.RichTextProperty{
			RichText: RichText(processed.Description),
		},
		schema.NextStepsProperty: notionapi.RichTextProperty{
			RichText: RichText(firstNonEmpty(processed.NextActions, sub.NextSteps, toBeDefined)),
		},
		schema.AttendeesProperty: notionapi.RichTextProperty{
			RichText: RichText(firstNonEmpty(sub.Attendees, toBeSpecified)),
		},
		schema.ProcessedDateProperty: notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		},
		schema.OriginalLanguageProperty: notionapi.RichTextProperty{
			RichText: RichText(fmt.Sprintf("Original (ES): %s | %s", sub.Title, sub.Description)),
		},
		schema.ExternalCaseIDProperty: notionapi.RichTextProperty{
			RichText: RichText(sub.ExternalCaseID),
		},
		schema.StatusProperty: notionapi.SelectProperty{
			Select: notionapi.Option{Name: schema.ProcessedLabel},
		},
		schema.SmartCommentProperty: notionapi.RichTextProperty{
			RichText: RichText(processed.SmartComment),
		},
	}

	if caseID, err := strconv.ParseInt(strings.TrimSpace(sub.CaseID), 10, 64); err == nil {
		props[schema.CaseIDProperty] = notionapi.NumberProperty{Number: float64(caseID)}
	}

	if processed.HasClientBrief(sub) {
		props[schema.ClientBriefProperty] = notionapi.RichTextProperty{
			RichText: RichText(processed.ClientBrief),
		}
	}

	return props
}

// RichText converts a string into Notion text objects. Notion measures
// MaxRichTextLength in UTF-16 code units, so a character outside the BMP
// counts twice. At most MaxRichTextObjects objects are returned and the rest
// of the text is dropped. An empty string yields one empty text object.
func RichText(content string) []notionapi.RichText {
	if content == "" {
		return []notionapi.RichText{{Text: &notionapi.Text{Content: ""}}}
	}

	var chunks []notionapi.RichText
	var sb strings.Builder
	units := 0
	for _, r := range content {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > MaxRichTextLength {
			chunks = append(chunks, notionapi.RichText{Text: &notionapi.Text{Content: sb.String()}})
			if len(chunks) == MaxRichTextObjects {
				return chunks
			}
			sb.Reset()
			units = 0
		}
		sb.WriteRune(r)
		units += n
	}
	return append(chunks, notionapi.RichText{Text: &notionapi.Text{Content: sb.String()}})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func propertyText(prop notionapi.Property) string {
	var texts []notionapi.RichText
	switch p := prop.(type) {
	case *notionapi.RichTextProperty:
		texts = p.RichText
	case notionapi.RichTextProperty:
		texts = p.RichText
	case *notionapi.TitleProperty:
		texts = p.Title
	case notionapi.TitleProperty:
		texts = p.Title
	}

	var sb strings.Builder
	for _, rt := range texts {
		if rt.PlainText != "" {
			sb.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			sb.WriteString(rt.Text.Content)
		}
	}
	return sb.String()
}

func propertyDate(prop notionapi.Property) time.Time {
	var obj *notionapi.DateObject
	switch p := prop.(type) {
	case *notionapi.DateProperty:
		obj = p.Date
	case notionapi.DateProperty:
		obj = p.Date
	}
	if obj == nil || obj.Start == nil {
		return time.Time{}
	}
	return time.Time(*obj.Start)
}

// wrapAPIError wraps a Notion client error in model.ErrPersistence, keeping
// the HTTP status and the error body returned by the API
func wrapAPIError(err error, msg string, opts ...goerr.Option) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		body, _ := json.Marshal(apiErr)
		opts = append(opts,
			goerr.V(model.StatusCodeKey, apiErr.Status),
			goerr.V(model.ResponseBodyKey, string(body)),
		)
		return goerr.Wrap(model.ErrPersistence,
			fmt.Sprintf("%s: Notion API error %d - %s", msg, apiErr.Status, string(body)), opts...)
	}
	return goerr.Wrap(model.ErrPersistence, msg+": "+err.Error(), opts...)
}
