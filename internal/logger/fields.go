package logger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldRunID identifies one analyzer invocation.
	FieldRunID = "run_id"
	// FieldDocument is the base name of the analyzed resume.
	FieldDocument = "document"
	// FieldStep names the analysis pipeline step an entry belongs to.
	FieldStep = "pipeline_step"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the AI provider and model. Empty values are dropped.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// AnalysisFields tags log entries of a single run. Only the base name of the document is logged.
func AnalysisFields(runID, document string) []zap.Field {
	if strings.TrimSpace(document) != "" {
		document = filepath.Base(document)
	}
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldDocument, Value: document},
	)
}
