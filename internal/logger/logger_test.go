package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden")
	assert.Zero(t, buf.Len(), "no output when verbose is disabled")

	SetVerbose(true)
	Debug("chunks: %d", 3)
	assert.Equal(t, "[DEBUG] chunks: 3\n", buf.String())
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Ingestion")
	assert.Equal(t, "\n=== Ingestion ===\n", buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("indexed %d vectors", 42)
	Warn("collection empty")
	assert.Equal(t, "[INFO] indexed 42 vectors\n[WARN] collection empty\n", buf.String())
}

func TestErrorIgnoresVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("upsert rejected: %s", "bad request")
	assert.Equal(t, "[ERROR] upsert rejected: bad request\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			SetVerbose(true)
			Debug("concurrent %d", n)
			IsVerbose()
			SetVerbose(false)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	// Passes if the race detector stays quiet.
}
