// Package document extracts plain text from resume files.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrNoText reports a document that parsed but yielded no text.
var ErrNoText = errors.New("no text could be extracted")

// ExtractionError wraps every failure to obtain text from a document.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Provider turns a document on disk into raw text.
type Provider interface {
	Extract(ctx context.Context, path string) (string, error)
}

// extractor is one strategy for pulling text out of PDF bytes.
type extractor struct {
	name string
	fn   func(data []byte) (string, error)
}

// Files is the default Provider. PDFs go through a primary and a fallback extractor; text
// and markdown files are read as they are.
type Files struct {
	logger     *zap.Logger
	extractors []extractor
}

func New(logger *zap.Logger) *Files {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Files{
		logger: logger,
		extractors: []extractor{
			{name: "plain_text", fn: plainText},
			{name: "text_by_row", fn: textByRow},
		},
	}
}

// Extract reads the document at path. Anything but a .txt or .md file is parsed as PDF.
func (f *Files) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		if strings.TrimSpace(string(data)) == "" {
			return "", &ExtractionError{Path: path, Err: ErrNoText}
		}
		return string(data), nil
	}

	return f.extractPDF(path, data)
}

func (f *Files) extractPDF(path string, data []byte) (string, error) {
	var errs []error
	for _, ex := range f.extractors {
		text, err := safeExtract(ex.fn, data)
		if err != nil {
			f.logger.Debug("pdf extractor failed", zap.String("extractor", ex.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", ex.name, err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			f.logger.Debug("pdf extractor returned no text", zap.String("extractor", ex.name))
			continue
		}

		f.logger.Debug("pdf text extracted",
			zap.String("extractor", ex.name),
			zap.Int("length", len(text)),
		)
		return strings.TrimSpace(text), nil
	}

	return "", &ExtractionError{Path: path, Err: errors.Join(append([]error{ErrNoText}, errs...)...)}
}

// safeExtract runs fn and turns a parser panic into an error.
func safeExtract(fn func([]byte) (string, error), data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()
	return fn(data)
}

func plainText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func textByRow(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		var lines []string
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if s := strings.TrimSpace(line.String()); s != "" {
				lines = append(lines, s)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n"), nil
}
