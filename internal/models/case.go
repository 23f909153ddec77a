// Package models holds the case record entity shared by the client API,
// export and server layers.
package models

import "sort"

// CaseRecord is the persisted case entity. CrimeNumber and ForwardDate are
// optional; nil means the operator left them blank. CreatedAt is assigned
// once by the server at append time (Unix nanoseconds) and is the sole sort
// key for presentation and export.
type CaseRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CaseNumber  string  `json:"case_number"`
	CrimeNumber *string `json:"crime_number,omitempty"`
	ForwardDate *string `json:"forward_date,omitempty"`
	ManualNote  string  `json:"manual_note"`
	CreatedAt   int64   `json:"created_at"`
}

// SortNewestFirst orders records by CreatedAt descending, in place. The
// server does not guarantee ordering, so every consumer sorts before
// display or export.
func SortNewestFirst(records []CaseRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
}

// OptText returns a pointer to the trimmed value, or nil when it is empty.
func OptText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TextOr returns the pointed-to value, or empty when absent.
func TextOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
