package logger

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := Log
	Log = log.New(&buf, "", 0)
	t.Cleanup(func() { Log = saved })
	return &buf
}

func TestLogLevelDefaultsToCritical(t *testing.T) {
	t.Setenv(LOG_ENABLE, "")
	assert.Equal(t, BATCH_CRITICAL_LOGGING, LogLevel())

	t.Setenv(LOG_ENABLE, "not-a-number")
	assert.Equal(t, BATCH_CRITICAL_LOGGING, LogLevel())

	t.Setenv(LOG_ENABLE, "10")
	assert.Equal(t, BATCH_DEBUG_LOGGING, LogLevel())
}

func TestPrintfFiltersByLevel(t *testing.T) {
	buf := captureLog(t)
	t.Setenv(LOG_ENABLE, "30")

	DebugPrintf("hidden %d", 1)
	InfoPrintf("hidden %d", 2)
	WarningPrintf("wasting %d processors", 22)
	ErrorPrintf("bad queue %s", "bogus")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARNING wasting 22 processors")
	assert.Contains(t, out, "ERROR bad queue bogus")
}

func TestObjDumpsJSON(t *testing.T) {
	buf := captureLog(t)
	t.Setenv(LOG_ENABLE, "10")

	DebugObj("queues", map[string]int{"long": 20})
	assert.Contains(t, buf.String(), "DEBUG queues:")
	assert.Contains(t, buf.String(), `"long": 20`)
}

func TestOpenLogFileTagsNewFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), LOG_FILENAME)

	f, err := openLogFile(logfile, LOG_DEFAULT_TIMEOUT)
	require.NoError(t, err)
	f.WriteString("entry\n")
	f.Close()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	_, perr := time.Parse(time.RFC3339, lines[0])
	assert.NoError(t, perr)
	assert.Equal(t, "entry", lines[1])
}

func TestOpenLogFileRotatesStaleFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), LOG_FILENAME)
	stale := time.Now().Add(-48*time.Hour).Format(time.RFC3339) + "\nold entry\n"
	require.NoError(t, os.WriteFile(logfile, []byte(stale), 0644))

	f, err := openLogFile(logfile, LOG_DEFAULT_TIMEOUT)
	require.NoError(t, err)
	f.Close()

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old entry")
}
