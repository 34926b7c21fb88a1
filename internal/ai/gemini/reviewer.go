package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/logger"
)

const (
	providerName = "gemini"

	defaultMaxLogLength = 200
	maxPromptResumeRune = 12000
	maxPromptBullets    = 10

	systemInstruction = "You are a concise, honest resume coach. Answer only with the JSON object requested."
)

//go:embed prompt.md
var promptTemplate string

var _ ai.Reviewer = (*Reviewer)(nil)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Reviewer asks Gemini for a summary and bullet rewrites on top of the deterministic analysis.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewReviewer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

// Review implements ai.Reviewer.
func (r *Reviewer) Review(ctx context.Context, req *ai.ReviewRequest) (*ai.Review, error) {
	if req == nil {
		return nil, errors.New("review request is required")
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, errors.New("resume text is required")
	}

	prompt := buildPrompt(req)
	r.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	review.Provider = providerName
	review.Model = r.generator.Model()
	review.Raw = raw
	return review, nil
}

func buildPrompt(req *ai.ReviewRequest) string {
	resume := req.ResumeText
	if runes := []rune(resume); len(runes) > maxPromptResumeRune {
		resume = string(runes[:maxPromptResumeRune])
	}

	bullets := req.Bullets
	if len(bullets) > maxPromptBullets {
		bullets = bullets[:maxPromptBullets]
	}

	replacer := strings.NewReplacer(
		"{{OVERALL}}", fmt.Sprint(req.Overall),
		"{{REFERENCE}}", orNone(req.ReferenceText),
		"{{WEAKNESSES}}", listOrNone(req.Weaknesses),
		"{{MISSING_KEYWORDS}}", orNone(strings.Join(req.MissingKeywords, ", ")),
		"{{BULLETS}}", listOrNone(bullets),
		"{{RESUME}}", resume,
	)
	return replacer.Replace(promptTemplate)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return strings.TrimSpace(s)
}

func listOrNone(items []string) string {
	var b strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return orNone(b.String())
}

type reviewPayload struct {
	Summary  string          `mapstructure:"summary"`
	Rewrites []ai.Suggestion `mapstructure:"rewrites"`
}

func parseResponse(raw string) (*ai.Review, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	var payload reviewPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil, fmt.Errorf("build response decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	rewrites := make([]ai.Suggestion, 0, len(payload.Rewrites))
	for _, s := range payload.Rewrites {
		s.Original = strings.TrimSpace(s.Original)
		s.Rewrite = strings.TrimSpace(s.Rewrite)
		if s.Rewrite == "" {
			continue
		}
		rewrites = append(rewrites, s)
	}

	return &ai.Review{
		Summary:  strings.TrimSpace(payload.Summary),
		Rewrites: rewrites,
	}, nil
}

// extractJSON strips markdown fences and any prose around the outermost JSON object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}
