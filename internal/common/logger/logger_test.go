package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapAdapter(zap.New(core)), logs
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestZapWrapper_FieldsAreOrdered(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.Info("Document generation completed", map[string]interface{}{
		"generationId": "gen-1",
		"diagnostics":  2,
		"filename":     "pagare_7_20250801.docx",
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	var keys []string
	for _, f := range entry.Context {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"diagnostics", "filename", "generationId"}, keys)
}

func TestZapWrapper_ErrorValues(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.Warn("Failed to index generated document", map[string]interface{}{
		"cause": fmt.Errorf("index closed"),
	})

	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "index closed", entry.ContextMap()["cause"])
}

func TestZapWrapper_WithFieldsAndLevel(t *testing.T) {
	log, logs := observed(zapcore.InfoLevel)

	scoped := log.WithFields(map[string]interface{}{"worker": "documents.generate"})
	scoped.Debug("dropped", nil)
	scoped.WithError(fmt.Errorf("boom")).Error("Job failed", nil)

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "documents.generate", ctx["worker"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNoOpLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNoOpLogger().With(map[string]interface{}{"a": 1}).Error("ignored", nil)
	})
}
