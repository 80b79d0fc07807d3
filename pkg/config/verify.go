package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

type schemaNode struct {
	Ref        string                 `json:"$ref"`
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties"`
	Defs       map[string]*schemaNode `json:"$defs"`
}

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema schemaNode
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root := schema.resolve(&schema)
	if root == nil {
		return errors.New("schema has no root definition")
	}
	if err := checkKeys("", configMap, root, &schema); err != nil {
		return fmt.Errorf("schema mismatch: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// resolve follows a local $ref into $defs
func (n *schemaNode) resolve(root *schemaNode) *schemaNode {
	if n == nil || n.Ref == "" {
		return n
	}
	const prefix = "#/$defs/"
	if len(n.Ref) <= len(prefix) || n.Ref[:len(prefix)] != prefix {
		return nil
	}
	return root.Defs[n.Ref[len(prefix):]]
}

// checkKeys reports config keys unknown to the schema, recursing into objects
func checkKeys(path string, values map[string]any, node, root *schemaNode) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prop, ok := node.Properties[k]
		if !ok {
			return fmt.Errorf("unknown field %s%s", path, k)
		}
		nested, isMap := values[k].(map[string]any)
		if !isMap {
			continue
		}
		if resolved := prop.resolve(root); resolved != nil && len(resolved.Properties) > 0 {
			if err := checkKeys(path+k+".", nested, resolved, root); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Crawler.StartURL == "" {
		return errors.New("crawler.start_url is required")
	}
	if cfg.Crawler.SiteRoot == "" {
		return errors.New("crawler.site_root is required")
	}
	if cfg.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return errors.New("server.timeout is required")
	}
	if cfg.Schedule.Enabled && cfg.Schedule.Cron == "" {
		return errors.New("schedule.cron is required when schedule is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
