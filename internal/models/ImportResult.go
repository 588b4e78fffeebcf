package models

import "time"

// ImportResult is produced once per run.
type ImportResult struct {
	Inserted     int `json:"inserted"`
	Updated      int `json:"updated"`
	Skipped      int `json:"skipped"`
	TotalFetched int `json:"total_fetched"`
}

// RunReport is the operator-facing outcome of a completed run.
type RunReport struct {
	RunId    string        `json:"run_id"`
	Result   ImportResult  `json:"result"`
	Duration time.Duration `json:"duration"`
}

// MetricRow is one line of the summary table. Order matters and is owned by
// the aggregator.
type MetricRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}
