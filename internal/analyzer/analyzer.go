// Package analyzer maps free-text responses to suggested location and form
// quality codes from the reference data.
package analyzer

import "context"

// Result is the outcome of analyzing one response text. A missing match is
// a normal outcome, not an error; Location and FQ are only set when
// MatchFound is true.
type Result struct {
	MatchFound bool   `json:"match_found"`
	Location   string `json:"location,omitempty"`
	FQ         string `json:"fq,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Analyzer is the classifier contract consumed by the response editors.
type Analyzer interface {
	AnalyzeResponse(ctx context.Context, responseText string, imageIndex int) (Result, error)
}
