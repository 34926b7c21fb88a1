package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/bullets"
	"github.com/spigell/resume-analyzer/internal/scoring"
	"github.com/spigell/resume-analyzer/internal/signals"
)

const (
	StepNormalize = "normalize"
	StepAlign     = "align"
	StepScore     = "score"
	StepFeedback  = "feedback"
	StepSuggest   = "suggest"
	StepRewrite   = "rewrite"
	StepAIReview  = "ai_review"
	StepReport    = "report"
)

type applyFunc func(ctx context.Context, deps Deps, st *State) (int, error)

type step struct {
	name    string
	enabled bool
	reason  string
	apply   applyFunc
}

func newStep(name string, apply applyFunc) *step {
	return &step{name: name, enabled: true, apply: apply}
}

func (s *step) Name() string { return s.name }

func (s *step) Disable(reason string) {
	s.enabled = false
	s.reason = reason
}

func (s *step) IsEnabled() bool { return s.enabled }

func (s *step) Reason() string { return s.reason }

func (s *step) Apply(ctx context.Context, deps Deps, st *State) (int, error) {
	return s.apply(ctx, deps, st)
}

// Steps returns a fresh pipeline in execution order.
func Steps() []Step {
	return []Step{
		newStep(StepNormalize, normalize),
		newStep(StepAlign, align),
		newStep(StepScore, score),
		newStep(StepFeedback, feedback),
		newStep(StepSuggest, suggest),
		newStep(StepRewrite, rewrite),
		newStep(StepAIReview, review),
		newStep(StepReport, report),
	}
}

func normalize(_ context.Context, deps Deps, st *State) (int, error) {
	st.Text = signals.Normalize(st.Input.ResumeText)
	st.Reference = deps.Aligner.Reference(st.Input.Role, st.Input.JobDescription)
	st.Bullets = signals.ExtractBullets(st.Text, deps.Options.Scoring.MaxBullets)
	return len(st.Bullets), nil
}

func align(_ context.Context, deps Deps, st *State) (int, error) {
	st.Result.KeywordAlignment = deps.Aligner.Align(st.Text, st.Reference, st.Input.TopKMissing)
	return len(st.Result.KeywordAlignment.MissingKeywords), nil
}

func score(_ context.Context, deps Deps, st *State) (int, error) {
	st.Result.Score = scoring.Score(st.Text, st.Result.KeywordAlignment.Similarity, deps.Options.Scoring)
	return len(st.Result.Score.Breakdown), nil
}

func feedback(_ context.Context, _ Deps, st *State) (int, error) {
	st.Result.Strengths, st.Result.Weaknesses = StrengthsWeaknesses(st.Result.Score.Signals, st.Result.KeywordAlignment)
	return len(st.Result.Strengths) + len(st.Result.Weaknesses), nil
}

func suggest(_ context.Context, deps Deps, st *State) (int, error) {
	st.Result.BulletSuggestions = bullets.Suggest(st.Bullets, deps.Options.MaxSuggestions, deps.Options.Scoring.SpecificityWords)
	return len(st.Result.BulletSuggestions), nil
}

func rewrite(_ context.Context, deps Deps, st *State) (int, error) {
	st.Result.Rewrites = bullets.Rewrites(st.Bullets, deps.Options.MaxRewrites, deps.Options.Scoring.SpecificityWords)
	return len(st.Result.Rewrites), nil
}

// review asks the configured reviewer for advice. A provider failure is recorded on the
// review and never fails the analysis.
func review(ctx context.Context, deps Deps, st *State) (int, error) {
	if deps.Reviewer == nil {
		return 0, nil
	}

	missing := make([]string, 0, len(st.Result.KeywordAlignment.MissingKeywords))
	for _, kw := range st.Result.KeywordAlignment.MissingKeywords {
		missing = append(missing, kw.Term)
	}

	weak := make([]string, 0, len(st.Result.BulletSuggestions))
	for _, s := range st.Result.BulletSuggestions {
		weak = append(weak, s.Original)
	}

	res, err := deps.Reviewer.Review(ctx, &ai.ReviewRequest{
		ResumeText:      st.Text,
		ReferenceText:   st.Reference,
		Overall:         st.Result.Score.Overall,
		Weaknesses:      st.Result.Weaknesses,
		MissingKeywords: missing,
		Bullets:         weak,
	})
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.Warn("AI review failed", zap.Error(err))
		}
		st.Result.AIReview = &ai.Review{Error: err.Error()}
		return 0, nil
	}
	if res == nil {
		return 0, nil
	}

	st.Result.AIReview = res
	return len(res.Rewrites), nil
}

func report(_ context.Context, _ Deps, st *State) (int, error) {
	st.Result.ReportText = RenderText(st.Result)
	return len(st.Result.ReportText), nil
}
