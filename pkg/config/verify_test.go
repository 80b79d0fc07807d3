package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "missing start url", modify: func(c *Config) { c.Crawler.StartURL = "" },
			wantErr: true, errMsg: "crawler.start_url is required"},
		{name: "missing site root", modify: func(c *Config) { c.Crawler.SiteRoot = "" },
			wantErr: true, errMsg: "crawler.site_root is required"},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" },
			wantErr: true, errMsg: "server.listen is required"},
		{name: "zero server timeout", modify: func(c *Config) { c.Server.Timeout = 0 },
			wantErr: true, errMsg: "server.timeout is required"},
		{name: "schedule without cron", modify: func(c *Config) { c.Schedule.Enabled, c.Schedule.Cron = true, "" },
			wantErr: true, errMsg: "schedule.cron is required"},
		{name: "no cron when schedule disabled", modify: func(c *Config) { c.Schedule.Cron = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckKeys(t *testing.T) {
	root := &schemaNode{
		Defs: map[string]*schemaNode{
			"Section": {Properties: map[string]*schemaNode{"known": {Type: "string"}}},
		},
	}
	node := &schemaNode{Properties: map[string]*schemaNode{"section": {Ref: "#/$defs/Section"}}}

	require.NoError(t, checkKeys("", map[string]any{"section": map[string]any{"known": "x"}}, node, root))

	err := checkKeys("", map[string]any{"section": map[string]any{"other": "x"}}, node, root)
	require.Error(t, err)
	assert.Equal(t, "unknown field section.other", err.Error())

	err = checkKeys("", map[string]any{"extra": 1}, node, root)
	require.Error(t, err)
	assert.Equal(t, "unknown field extra", err.Error())
}

func TestEmbeddedSchemaCoversConfig(t *testing.T) {
	cfg := Default()
	cfg.Output.Path = "records.jsonl"
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg), "every config field is described in schema.json")
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.NotEmpty(t, schema.Definitions)
}
