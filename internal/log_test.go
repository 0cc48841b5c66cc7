package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn)

	logger.Info("seeded with %d", 42)
	logger.Debug("draw %d", 1)
	assert.Empty(t, buf.String())

	logger.Warn("entropy unavailable")
	logger.Error("open %s", "vmd.tcl")
	assert.Contains(t, buf.String(), "[WARN] entropy unavailable")
	assert.Contains(t, buf.String(), "[ERROR] open vmd.tcl")
}
