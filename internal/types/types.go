// Package types defines shared types used across the application.
package types

import "time"

// Record is a single extracted record. Values are either a string or a
// []string, depending on how many elements the selector matched.
type Record map[string]any

// ScrapeStats summarizes a single scrape run.
type ScrapeStats struct {
	NrItems   int       `json:"nrItems"`
	NrErrors  int       `json:"nrErrors"`
	NrPages   int       `json:"nrPages"`
	NrScrolls int       `json:"nrScrolls"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Result holds the outcome of a scrape run. Fields lists the record keys
// in configuration order so that writers can produce deterministic columns.
type Result struct {
	Fields []string     `json:"fields"`
	Items  []Record     `json:"items"`
	Stats  *ScrapeStats `json:"stats"`
}
