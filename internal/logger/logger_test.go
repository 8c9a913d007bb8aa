package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("recommendations served", "count", 3, "industry", "tech")
	log.Error("relay failed", errors.New("timeout"), "attempt", 2)
	log.With("request_id", "abc").Warn("slow request")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "recommendations served", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
	assert.Equal(t, "tech", entries[0].ContextMap()["industry"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "timeout", entries[1].ContextMap()["error"])

	assert.Equal(t, "abc", entries[2].ContextMap()["request_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNew_DoesNotPanic(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		l := New(env, "info")
		l.Debug("dropped below level")
		_ = l.Sync()
	}
	NewNop().Info("nothing")
}
