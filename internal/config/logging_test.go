package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfig_NewLogger(t *testing.T) {
	t.Run("json handler respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: LogLevelWarn, Format: LogFormatJSON}.NewLogger(&buf, false)

		logger.Info("dropped")
		logger.Warn("kept", "file", "a.md")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "kept", record["msg"])
		assert.Equal(t, "a.md", record["file"])
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := LoggingConfig{Level: LogLevelError, Format: LogFormatText}.NewLogger(&buf, true)

		logger.Debug("tokenizing")
		assert.Contains(t, buf.String(), "msg=tokenizing")
	})
}
