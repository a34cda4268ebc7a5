package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/smartcomment/pkg/cli/config"
	"github.com/secmon-lab/smartcomment/pkg/service/notion"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid configuration",
			content: `
[notion]
client = "Customer"
client_brief = "Brief"
new_label = "New"
follow_up_label = "Follow-up"

[brief]
country = "Chile"
keywords = "industry revenue"

[llm]
summary_model = "gpt-4o"
`,
		},
		{
			name:    "empty file uses defaults",
			content: "",
		},
		{
			name: "duplicate property names",
			content: `
[notion]
title = "Cliente"
`,
			wantErr: config.ErrDuplicatePropertyID,
		},
		{
			name: "blank property name",
			content: `
[notion]
status = "   "
`,
			wantErr: config.ErrEmptyPropertyName,
		},
		{
			name: "same labels for both types",
			content: `
[notion]
new_label = "Seguimiento"
`,
			wantErr: config.ErrDuplicateSelectLabel,
		},
		{
			name:    "broken TOML",
			content: `[notion`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadAppConfiguration(writeConfig(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err)
				gt.B(t, errors.Is(err, tt.wantErr)).True()
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, cfg).NotNil()
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
	})
}

func TestAppConfig_Schema(t *testing.T) {
	cfg, err := config.LoadAppConfiguration(writeConfig(t, `
[notion]
client = "Customer"
`))
	gt.NoError(t, err).Required()

	schema := cfg.Schema()
	gt.V(t, schema.ClientProperty).Equal("Customer")
	gt.V(t, schema.TitleProperty).Equal(notion.DefaultSchema().TitleProperty)
	gt.V(t, schema.NewLabel).Equal("Nuevo")
}

func TestAppConfig_BriefOptions(t *testing.T) {
	gt.A(t, (&config.AppConfig{}).BriefOptions()).Length(0)

	cfg := &config.AppConfig{Brief: config.BriefConfig{Country: "Chile", Keywords: "industry"}}
	gt.A(t, cfg.BriefOptions()).Length(2)
}

func TestApp_Configure(t *testing.T) {
	t.Run("no path returns defaults", func(t *testing.T) {
		cfg, err := config.NewAppForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.V(t, cfg.Schema()).Equal(notion.DefaultSchema())
	})

	t.Run("path is loaded", func(t *testing.T) {
		path := writeConfig(t, "[brief]\ncountry = \"Peru\"\n")
		cfg, err := config.NewAppForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.V(t, cfg.Brief.Country).Equal("Peru")
	})
}
