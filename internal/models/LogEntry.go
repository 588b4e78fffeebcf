package models

import "time"

type LogLevel string

const (
	LevelInfo  LogLevel = "INFO"
	LevelError LogLevel = "ERROR"
)

// LogEntry is one append-only execution log row. Context is stored
// JSON-serialized.
type LogEntry struct {
	Ts      time.Time      `json:"ts"`
	Level   LogLevel       `json:"level"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}
