package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// NotApplicableBrief is stored as client_brief for follow-up submissions
const NotApplicableBrief = "N/A - Follow-up"

// ProcessedRecord is the structured answer of the LLM for one submission
type ProcessedRecord struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Technology         string `json:"technology"`
	SmartComment       string `json:"smart_comment"`
	ClientBrief        string `json:"client_brief"`
	NextActions        string `json:"next_actions"`
	TechnicalFocus     string `json:"technical_focus"`
	RecommendedSmartID string `json:"recommended_smart_id,omitempty"`
}

// processedRecordKeys are the JSON keys every LLM answer must carry. Only
// recommended_smart_id may be left out.
var processedRecordKeys = []string{
	"title",
	"description",
	"technology",
	"smart_comment",
	"client_brief",
	"next_actions",
	"technical_focus",
}

// DecodeProcessedRecord decodes a JSON object into a ProcessedRecord and
// fails when a required key is absent. Present keys may hold empty strings.
func DecodeProcessedRecord(data []byte) (*ProcessedRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse processed record as JSON object")
	}

	var missing []string
	for _, key := range processedRecordKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, goerr.New("processed record lacks required fields: "+strings.Join(missing, ", "),
			goerr.V(MissingFieldsKey, missing))
	}

	var rec ProcessedRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode processed record")
	}
	return &rec, nil
}

// Validate checks the fields a SMART record cannot be stored without.
// Technology, next actions and the brief may be empty; the page falls back to
// the submission values for them.
func (p *ProcessedRecord) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"smart_comment", p.SmartComment},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return goerr.New("processed record has empty fields: "+strings.Join(missing, ", "),
			goerr.V(MissingFieldsKey, missing))
	}
	return nil
}

// HasClientBrief reports whether a client brief should be stored for the
// submission: only new clients with an actual brief get one.
func (p *ProcessedRecord) HasClientBrief(s *Submission) bool {
	if !s.IsNew() {
		return false
	}
	brief := strings.TrimSpace(p.ClientBrief)
	return brief != "" && brief != NotApplicableBrief
}
