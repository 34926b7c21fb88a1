package document

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractPlainFiles(t *testing.T) {
	t.Parallel()

	provider := New(nil)
	for _, name := range []string{"resume.txt", "resume.MD"} {
		path := writeFile(t, name, "Jane Doe\n- Built things\n")
		text, err := provider.Extract(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe\n- Built things\n", text)
	}
}

func TestExtractEmptyTextFile(t *testing.T) {
	t.Parallel()

	_, err := New(nil).Extract(context.Background(), writeFile(t, "resume.txt", " \n\t"))

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.pdf")
	_, err := New(nil).Extract(context.Background(), path)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, path, extractionErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExtractInvalidPDFTriesEveryExtractor(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	_, err := New(zap.New(core)).Extract(context.Background(), writeFile(t, "resume.pdf", "not a pdf at all"))

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.ErrorIs(t, err, ErrNoText)
	assert.Equal(t, 2, logs.FilterMessage("pdf extractor failed").Len())
}

func TestExtractFallsBack(t *testing.T) {
	t.Parallel()

	provider := &Files{
		logger: zap.NewNop(),
		extractors: []extractor{
			{name: "empty", fn: func([]byte) (string, error) { return "  ", nil }},
			{name: "broken", fn: func([]byte) (string, error) { panic("bad xref") }},
			{name: "working", fn: func([]byte) (string, error) { return " text \n", nil }},
		},
	}

	text, err := provider.Extract(context.Background(), writeFile(t, "resume.pdf", "%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "text", text)
}

func TestExtractRecoversParserPanic(t *testing.T) {
	t.Parallel()

	provider := &Files{
		logger: zap.NewNop(),
		extractors: []extractor{
			{name: "broken", fn: func([]byte) (string, error) { panic("bad xref") }},
		},
	}

	_, err := provider.Extract(context.Background(), writeFile(t, "resume.pdf", "%PDF-1.4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoText)
	assert.Contains(t, err.Error(), "bad xref")
}

func TestExtractHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Extract(ctx, writeFile(t, "resume.txt", "text"))
	assert.True(t, errors.Is(err, context.Canceled))
}
