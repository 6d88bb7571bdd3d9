// Package legacy implements the client side of the legacy CRM integration:
// the JSON secret that configures it and the HTTP client that talks to it.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config holds the settings needed to reach the CRM system. It is loaded once
// at startup and injected into the client; a changed secret requires a
// process restart to take effect.
type Config struct {
	URL      string `json:"url"`
	APIToken string `json:"api_token"`
}

// LoadConfig parses the CRM secret. Blank input and malformed JSON are
// errors; unknown fields are ignored. Callers treat a load failure as
// "integration disabled" by constructing the client with a nil config.
func LoadConfig(raw []byte) (*Config, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("legacy config: secret is empty")
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("legacy config: parse secret: %w", err)
	}
	return &cfg, nil
}

// LoadConfigFile reads the CRM secret from path and parses it.
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("legacy config: read secret: %w", err)
	}
	return LoadConfig(raw)
}
