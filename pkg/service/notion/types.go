package notion

import (
	"context"
	"time"

	"github.com/secmon-lab/smartcomment/pkg/domain/model"
)

// Service provides interface to the Notion database holding SMART Comments
type Service interface {
	// CreateSmartPage stores one processed submission as a database page.
	// Failures are wrapped in model.ErrPersistence.
	CreateSmartPage(ctx context.Context, sub *model.Submission, processed *model.ProcessedRecord, processedAt time.Time) (*model.PageRef, error)

	// RecentActivity returns up to limit pages of the same client, and of the
	// same technology when one is given, newest first
	RecentActivity(ctx context.Context, client, technology string, limit int) ([]*model.Activity, error)

	// DatabaseTitle fetches the database and returns its title
	DatabaseTitle(ctx context.Context) (string, error)

	// MissingProperties returns schema property names the database does not have
	MissingProperties(ctx context.Context) ([]string, error)
}

// Schema names the database properties and select options. The defaults
// match the original SMART database, which mixes Spanish and English names.
type Schema struct {
	TypeProperty             string `toml:"type"`
	ClientProperty           string `toml:"client"`
	TitleProperty            string `toml:"title"`
	TechnologyProperty       string `toml:"technology"`
	DescriptionProperty      string `toml:"description"`
	NextStepsProperty        string `toml:"next_steps"`
	AttendeesProperty        string `toml:"attendees"`
	ProcessedDateProperty    string `toml:"processed_date"`
	OriginalLanguageProperty string `toml:"original_language"`
	CaseIDProperty           string `toml:"case_id"`
	ExternalCaseIDProperty   string `toml:"external_case_id"`
	StatusProperty           string `toml:"status"`
	SmartCommentProperty     string `toml:"smart_comment"`
	ClientBriefProperty      string `toml:"client_brief"`

	NewLabel       string `toml:"new_label"`
	FollowUpLabel  string `toml:"follow_up_label"`
	ProcessedLabel string `toml:"processed_label"`
}

// DefaultSchema returns the property names of the SMART database
func DefaultSchema() Schema {
	return Schema{
		TypeProperty:             "¿Seguimiento o Nuevo?",
		ClientProperty:           "Cliente",
		TitleProperty:            "Title",
		TechnologyProperty:       "Tecnología",
		DescriptionProperty:      "Description",
		NextStepsProperty:        "Siguientes pasos:",
		AttendeesProperty:        "Asistentes",
		ProcessedDateProperty:    "Processed Date",
		OriginalLanguageProperty: "Original Language",
		CaseIDProperty:           "SMART ID",
		ExternalCaseIDProperty:   "SALESFORCE ID",
		StatusProperty:           "Status",
		SmartCommentProperty:     "SMART Comment",
		ClientBriefProperty:      "Client Brief",

		NewLabel:       "Nuevo",
		FollowUpLabel:  "Seguimiento",
		ProcessedLabel: "Processed",
	}
}

// Merge returns s with empty fields taken from base
func (s Schema) Merge(base Schema) Schema {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Schema{
		TypeProperty:             pick(s.TypeProperty, base.TypeProperty),
		ClientProperty:           pick(s.ClientProperty, base.ClientProperty),
		TitleProperty:            pick(s.TitleProperty, base.TitleProperty),
		TechnologyProperty:       pick(s.TechnologyProperty, base.TechnologyProperty),
		DescriptionProperty:      pick(s.DescriptionProperty, base.DescriptionProperty),
		NextStepsProperty:        pick(s.NextStepsProperty, base.NextStepsProperty),
		AttendeesProperty:        pick(s.AttendeesProperty, base.AttendeesProperty),
		ProcessedDateProperty:    pick(s.ProcessedDateProperty, base.ProcessedDateProperty),
		OriginalLanguageProperty: pick(s.OriginalLanguageProperty, base.OriginalLanguageProperty),
		CaseIDProperty:           pick(s.CaseIDProperty, base.CaseIDProperty),
		ExternalCaseIDProperty:   pick(s.ExternalCaseIDProperty, base.ExternalCaseIDProperty),
		StatusProperty:           pick(s.StatusProperty, base.StatusProperty),
		SmartCommentProperty:     pick(s.SmartCommentProperty, base.SmartCommentProperty),
		ClientBriefProperty:      pick(s.ClientBriefProperty, base.ClientBriefProperty),
		NewLabel:                 pick(s.NewLabel, base.NewLabel),
		FollowUpLabel:            pick(s.FollowUpLabel, base.FollowUpLabel),
		ProcessedLabel:           pick(s.ProcessedLabel, base.ProcessedLabel),
	}
}

// PropertyNames returns every property name of the schema
func (s Schema) PropertyNames() []string {
	return []string{
		s.TypeProperty,
		s.ClientProperty,
		s.TitleProperty,
		s.TechnologyProperty,
		s.DescriptionProperty,
		s.NextStepsProperty,
		s.AttendeesProperty,
		s.ProcessedDateProperty,
		s.OriginalLanguageProperty,
		s.CaseIDProperty,
		s.ExternalCaseIDProperty,
		s.StatusProperty,
		s.SmartCommentProperty,
		s.ClientBriefProperty,
	}
}

const (
	// MaxRichTextLength is the Notion limit for the content of one text object
	MaxRichTextLength = 2000
	// MaxRichTextObjects is the Notion limit for text objects in one property
	MaxRichTextObjects = 100

	notSpecified  = "No especificado"
	toBeDefined   = "To be defined"
	toBeSpecified = "To be specified"
)
