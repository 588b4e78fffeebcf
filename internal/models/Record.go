package models

import (
	"fmt"
	"strings"
	"time"
)

// Record is one normalized upstream item. Identity key is Id.
type Record struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Dimension string `json:"dimension"`
}

// PersistedRow is one row of the data table. Ts is the ingestion instant,
// never a time taken from the upstream payload.
type PersistedRow struct {
	Pos       int64     `json:"pos"`
	Ts        time.Time `json:"ts"`
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Dimension string    `json:"dimension"`
}

type ImportMode string

const (
	ModeUpsert ImportMode = "upsert"
	ModeAppend ImportMode = "append"
)

// ParseImportMode folds case and applies the documented default. An unknown
// non-empty value is a configuration error rather than a silent fallback.
func ParseImportMode(raw string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeUpsert):
		return ModeUpsert, nil
	case string(ModeAppend):
		return ModeAppend, nil
	default:
		return "", &ConfigError{Key: "mode", Reason: fmt.Sprintf("unknown mode %q", raw)}
	}
}
