package models

import "fmt"

// ConfigError reports a missing or malformed run-config value.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// FetchError reports a failed page fetch. Any page failure aborts the whole
// fetch, so at most one FetchError is produced per run.
type FetchError struct {
	Page   int
	Status int
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch: page %d: non-200 response (%d)", e.Page, e.Status)
	}
	return fmt.Sprintf("fetch: page %d: %s", e.Page, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreWriteError wraps an underlying write failure against the persisted
// store.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
