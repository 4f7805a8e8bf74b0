package logger

import (
	"os"
	"path/filepath"
	"testing"

	"study_assistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestInitLogger_WritesJSONFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	file := filepath.Join(t.TempDir(), "logs", "app.log")
	InitLogger(&config.LogConfig{Level: "info", File: file, MaxSize: 1, MaxBackups: 1, MaxAge: 1})

	Log.Info("todo created", zap.Uint("todo_id", 7))
	Log.Debug("filtered out")
	Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"todo created"`)
	assert.Contains(t, string(data), `"todo_id":7`)
	assert.NotContains(t, string(data), "filtered out")
}
