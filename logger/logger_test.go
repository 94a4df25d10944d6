package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesTimestampedLogFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)

	log, err := New(logDir, now)
	require.NoError(t, err)

	log.Info("new instance running")
	log.Warning("no prompt configured for %s", "readme")
	log.Critical("option [%s] not recognized", "bogus")
	require.NoError(t, log.Close())

	assert.Equal(t, filepath.Join(logDir, "2024-05-01_13-04-05_codeassist.log"), log.Path())

	content, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), "new instance running")
	assert.Contains(t, string(content), "no prompt configured for readme")
	assert.Contains(t, string(content), "option [bogus] not recognized")
	assert.Contains(t, string(content), "critical")
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("saved file: %s", "README.md")

	assert.Contains(t, buf.String(), "saved file: README.md")
	assert.Equal(t, "", log.Path())
	assert.NoError(t, log.Close())
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Info("a %d", 1)
	rec.Warning("b")
	rec.Critical("c")

	entries := rec.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Level: "info", Message: "a 1"}, entries[0])
	assert.True(t, rec.Contains("warning", "b"))
	assert.False(t, rec.Contains("info", "c"))
}
