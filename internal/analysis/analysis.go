// Package analysis runs the document-to-feedback pipeline: normalization, keyword alignment,
// rubric scoring, feedback, bullet advice and report rendering.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/bullets"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

// Input is a single analysis request.
type Input struct {
	ResumeText       string
	Role             string
	JobDescription   string
	TopKMissing      int `validate:"gte=0"`
	GenerateRewrites bool
}

// Options are the analyzer tunables. Zero values fall back to the package defaults.
type Options struct {
	Scoring        scoring.Options         `mapstructure:",squash"`
	MissingRatio   float64                 `mapstructure:"missing-ratio" validate:"gte=0,lte=1"`
	MaxFeatures    int                     `mapstructure:"max-features" validate:"gte=0"`
	MaxSuggestions int                     `mapstructure:"max-suggestions" validate:"gte=0"`
	MaxRewrites    int                     `mapstructure:"max-rewrites" validate:"gte=0"`
	Roles          []keywords.RoleKeywords `mapstructure:"-" validate:"dive"`
}

func DefaultOptions() Options {
	return Options{
		Scoring:        scoring.DefaultOptions(),
		MissingRatio:   keywords.DefaultMissingRatio,
		MaxFeatures:    keywords.DefaultMaxFeatures,
		MaxSuggestions: bullets.DefaultMaxSuggestions,
		MaxRewrites:    bullets.DefaultMaxRewrites,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Scoring.MaxBullets <= 0 {
		o.Scoring.MaxBullets = def.Scoring.MaxBullets
	}
	if o.Scoring.ScoredBullets <= 0 {
		o.Scoring.ScoredBullets = def.Scoring.ScoredBullets
	}
	if o.Scoring.SpecificityWords <= 0 {
		o.Scoring.SpecificityWords = def.Scoring.SpecificityWords
	}
	if o.MissingRatio <= 0 {
		o.MissingRatio = def.MissingRatio
	}
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = def.MaxFeatures
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = def.MaxSuggestions
	}
	if o.MaxRewrites <= 0 {
		o.MaxRewrites = def.MaxRewrites
	}
	return o
}

// Dependency configures optional collaborators of an Analyzer.
type Dependency func(*Analyzer)

// WithReviewer enables the AI review step.
func WithReviewer(r ai.Reviewer) Dependency {
	return func(a *Analyzer) {
		a.reviewer = r
	}
}

// WithDocuments replaces the default document provider.
func WithDocuments(p document.Provider) Dependency {
	return func(a *Analyzer) {
		if p != nil {
			a.documents = p
		}
	}
}

// Analyzer runs analyses. It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	logger    *zap.Logger
	opts      Options
	aligner   *keywords.Aligner
	reviewer  ai.Reviewer
	documents document.Provider
	validate  *validator.Validate
}

func New(logger *zap.Logger, opts Options, deps ...Dependency) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid analysis options: %w", err)
	}
	opts = opts.withDefaults()

	a := &Analyzer{
		logger: logger,
		opts:   opts,
		aligner: keywords.New(
			keywords.WithMissingRatio(opts.MissingRatio),
			keywords.WithMaxFeatures(opts.MaxFeatures),
			keywords.WithRoles(opts.Roles...),
		),
		documents: document.New(logger),
		validate:  validate,
	}
	for _, dep := range deps {
		dep(a)
	}

	return a, nil
}

// Options returns the effective tunables.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Steps returns the pipeline Analyze would run for in, with statuses applied.
func (a *Analyzer) Steps(in Input) []Step {
	steps := Steps()
	if !in.GenerateRewrites {
		DisableByName(steps, StepRewrite, "rewrites not requested")
	}
	if a.reviewer == nil {
		DisableByName(steps, StepAIReview, "no AI reviewer configured")
	}
	return steps
}

// Analyze runs the pipeline over in.ResumeText. It never returns nil: any error or panic is
// reported through the failed variant of Result.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			a.logger.Error("analysis panicked", zap.Error(err))
			res = Failure(err, string(debug.Stack()))
		}
	}()

	if err := a.validate.Struct(in); err != nil {
		a.logger.Warn("invalid analysis input", zap.Error(err))
		return Failure(fmt.Errorf("invalid input: %w", err), "")
	}

	st := &State{Input: in, Result: newResult()}
	deps := Deps{
		Logger:   a.logger,
		Aligner:  a.aligner,
		Reviewer: a.reviewer,
		Options:  a.opts,
	}

	if err := Run(ctx, deps, a.Steps(in), st); err != nil {
		a.logger.Error("analysis failed", zap.Error(err))
		return Failure(err, "")
	}

	a.logger.Info("analysis finished",
		zap.Int("overall", st.Result.Score.Overall),
		zap.String("grade", string(st.Result.Score.Grade)),
		zap.Float64("similarity", st.Result.KeywordAlignment.Similarity),
	)
	return st.Result
}

// AnalyzeDocument extracts the text of the document at path and analyzes it. Extraction
// failures are reported through the failed variant of Result.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, path string, in Input) *Result {
	text, err := a.documents.Extract(ctx, path)
	if err != nil {
		if errors.Is(err, document.ErrNoText) {
			a.logger.Warn("document has no extractable text", zap.Error(err))
		} else {
			a.logger.Error("document extraction failed", zap.Error(err))
		}
		return Failure(fmt.Errorf("extract text: %w", err), "")
	}

	in.ResumeText = text
	return a.Analyze(ctx, in)
}
