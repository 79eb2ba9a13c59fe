package errors

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	log "github.com/baberabb/lm-evaluation-harness-sub001/pkg/logger"
)

// captureLog swaps in a buffer-backed default logger for the test's duration.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	originalLogger := log.Default()
	t.Cleanup(func() { log.SetDefault(originalLogger) })

	var logBuf bytes.Buffer
	testLogger := log.New()
	testLogger.SetOutput(&logBuf)
	testLogger.SetLevel(log.CharmLevel(log.LogLevelTrace))
	log.SetDefault(testLogger)
	return &logBuf
}

func TestCheckErrorAndPrint(t *testing.T) {
	logBuf := captureLog(t)

	CheckErrorAndPrint(errors.New("this is a test error"))
	assert.Contains(t, logBuf.String(), "this is a test error")

	logBuf.Reset()
	CheckErrorAndPrint(nil)
	assert.Empty(t, logBuf.String())
}

func TestCheckErrorPrintAndExit(t *testing.T) {
	logBuf := captureLog(t)

	oldOsExit := OsExit
	t.Cleanup(func() { OsExit = oldOsExit })

	exitCode := -1
	OsExit = func(code int) { exitCode = code }

	CheckErrorPrintAndExit(WithExitCode(errors.New("definitions invalid"), 2))
	assert.Equal(t, 2, exitCode)
	assert.Contains(t, logBuf.String(), "definitions invalid")

	exitCode = -1
	CheckErrorPrintAndExit(errors.New("plain failure"))
	assert.Equal(t, 1, exitCode)
}

func TestCheckErrorPrintAndExitNilError(t *testing.T) {
	oldOsExit := OsExit
	t.Cleanup(func() { OsExit = oldOsExit })

	called := false
	OsExit = func(code int) { called = true }

	CheckErrorPrintAndExit(nil)
	assert.False(t, called)
}
