package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mwhitt/corpora-audit/internal/schemas"
	"github.com/mwhitt/corpora-audit/internal/types"
)

// LoadGroupConfig loads the group policy table from a JSON or YAML file.
// JSON input is validated against the embedded schema before decoding. A load
// or validation failure aborts the whole run: without a policy table no
// meaningful audit is possible.
func LoadGroupConfig(path string) (types.GroupConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("group config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read group config %s: %w", path, err)
	}

	var groups types.GroupConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &groups); err != nil {
			return nil, fmt.Errorf("failed to parse group config YAML: %w", err)
		}
	default:
		if err := schemas.ValidateGroupConfig(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &groups); err != nil {
			return nil, fmt.Errorf("failed to parse group config JSON: %w", err)
		}
	}

	if err := groups.Validate(); err != nil {
		return nil, err
	}

	return groups, nil
}
