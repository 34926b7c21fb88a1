// Package ai defines the optional model-backed review of an analyzed resume.
package ai

import (
	"context"
)

// ReviewRequest carries what a reviewer needs. It is built from a finished deterministic analysis.
type ReviewRequest struct {
	ResumeText      string
	ReferenceText   string
	Overall         int
	Weaknesses      []string
	MissingKeywords []string
	Bullets         []string
}

// Suggestion is a model-proposed rewrite of one bullet.
type Suggestion struct {
	Original string `json:"original" mapstructure:"original"`
	Rewrite  string `json:"rewrite" mapstructure:"rewrite"`
}

// Review is the outcome of an AI review. Error is set when the provider failed; the rest of
// the analysis stays valid.
type Review struct {
	Provider string       `json:"provider"`
	Model    string       `json:"model"`
	Summary  string       `json:"summary"`
	Rewrites []Suggestion `json:"rewrites"`
	Raw      string       `json:"raw,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type Reviewer interface {
	Review(ctx context.Context, req *ReviewRequest) (*Review, error)
}
