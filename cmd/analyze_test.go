package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analysis"
	"github.com/spigell/resume-analyzer/internal/keywords"
)

const resume = `Jane Doe | jane@doe.dev | 512-555-0100

Experience
- Responsible for reports
- Built a reporting pipeline in Go and Kafka for 4,000 partner accounts across four regions
`

func analyzed(t *testing.T, rewrite bool) *analysis.Result {
	t.Helper()

	a, err := analysis.New(zap.NewNop(), analysis.DefaultOptions())
	require.NoError(t, err)
	res := a.Analyze(context.Background(), analysis.Input{ResumeText: resume, Role: "software engineer", TopKMissing: 5, GenerateRewrites: rewrite})
	require.False(t, res.Failed(), res.Error)
	return res
}

func TestHandleAction(t *testing.T) {
	t.Parallel()

	res := analyzed(t, false)

	var out bytes.Buffer
	require.NoError(t, handleAction(PromptBreakdown, res, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "Score Breakdown")

	out.Reset()
	require.NoError(t, handleAction(PromptKeywords, res, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "Top Missing Keywords:")

	out.Reset()
	require.NoError(t, handleAction(PromptSuggestions, res, &out, zap.NewNop()))
	assert.Contains(t, out.String(), "Original: Responsible for reports")

	out.Reset()
	require.NoError(t, handleAction(PromptRewrites, res, &out, zap.NewNop()))
	assert.Empty(t, out.String())

	assert.True(t, errors.Is(handleAction(PromptExit, res, &out, zap.NewNop()), errExit))
	assert.Error(t, handleAction("unknown", res, &out, zap.NewNop()))
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	res := analyzed(t, true)

	data, err := render(formatJSON, res, zap.NewNop())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "rewrites")
	assert.Contains(t, decoded, "report_text")

	text, err := render(formatText, res, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, res.ReportText, string(text))

	failed, err := render(formatJSON, analysis.Failure(errors.New("broken pdf"), ""), zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, string(failed), "Analysis failed: broken pdf")
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	filename, err := dumpToTmpFile(analyzed(t, false))
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(filename) })

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestReadJobDescription(t *testing.T) {
	t.Parallel()

	text, err := readJobDescription("  ")
	require.NoError(t, err)
	assert.Empty(t, text)

	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("python sql\xff"), 0o600))
	text, err = readJobDescription(path)
	require.NoError(t, err)
	assert.Equal(t, "python sql", text)

	_, err = readJobDescription(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoleKeywords(t *testing.T) {
	t.Parallel()

	assert.Nil(t, roleKeywords(nil))

	got := roleKeywords(map[string][]string{
		"data analyst":        {"sql"},
		"Senior Data Analyst": {"dbt", "looker"},
		" ":                   {"ignored"},
	})
	assert.Equal(t, []keywords.RoleKeywords{
		{Role: "senior data analyst", Keywords: []string{"dbt", "looker"}},
		{Role: "data analyst", Keywords: []string{"sql"}},
	}, got)
}
