package models

import (
	"strconv"
	"strings"
)

// RunConfig is the per-run import configuration read from the config table.
type RunConfig struct {
	ApiUrl   string
	MaxPages int
	Mode     ImportMode
}

// DefaultRunConfig returns the documented sample values used to seed an
// empty config table.
func DefaultRunConfig() map[string]string {
	return map[string]string{
		"api_url":   "https://rickandmortyapi.com/api/location",
		"max_pages": "3",
		"mode":      string(ModeUpsert),
	}
}

func ParseRunConfig(kv map[string]string) (RunConfig, error) {
	apiUrl := strings.TrimSpace(kv["api_url"])
	if apiUrl == "" {
		return RunConfig{}, &ConfigError{Key: "api_url", Reason: "required"}
	}

	maxPages := 1
	if raw := strings.TrimSpace(kv["max_pages"]); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return RunConfig{}, &ConfigError{Key: "max_pages", Reason: "not an integer"}
		}
		if n < 1 {
			return RunConfig{}, &ConfigError{Key: "max_pages", Reason: "must be at least 1"}
		}
		maxPages = n
	}

	mode, err := ParseImportMode(kv["mode"])
	if err != nil {
		return RunConfig{}, err
	}

	return RunConfig{ApiUrl: apiUrl, MaxPages: maxPages, Mode: mode}, nil
}
