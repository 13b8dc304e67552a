// File: cmd/passgauge/main_test.go
package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetMocks restores the original function implementations.
func resetMocks() {
	osWriteFile = os.WriteFile
	osExit = os.Exit
}

func TestHandlePanic(t *testing.T) {
	t.Run("writes the panic log and exits non-zero", func(t *testing.T) {
		defer resetMocks()

		var (
			writtenPath string
			writtenData []byte
			exitCode    = -1
		)
		osWriteFile = func(name string, data []byte, perm os.FileMode) error {
			writtenPath = name
			writtenData = data
			return nil
		}
		osExit = func(code int) { exitCode = code }

		func() {
			defer handlePanic()
			panic("boom")
		}()

		assert.Equal(t, panicLogFile, writtenPath)
		require.NotEmpty(t, writtenData)
		assert.Contains(t, string(writtenData), "panic: boom")
		assert.Contains(t, string(writtenData), "goroutine")
		assert.Equal(t, 1, exitCode)
	})

	t.Run("still exits non-zero when the log cannot be written", func(t *testing.T) {
		defer resetMocks()

		exitCode := -1
		osWriteFile = func(string, []byte, os.FileMode) error {
			return os.ErrPermission
		}
		osExit = func(code int) { exitCode = code }

		func() {
			defer handlePanic()
			panic("boom")
		}()

		assert.Equal(t, 1, exitCode)
	})

	t.Run("does nothing without a panic", func(t *testing.T) {
		defer resetMocks()

		called := false
		osWriteFile = func(string, []byte, os.FileMode) error {
			called = true
			return nil
		}
		osExit = func(int) { called = true }

		handlePanic()

		assert.False(t, called)
	})
}

func TestExecuteInteractiveCommand(t *testing.T) {
	t.Run("survives an unknown command", func(t *testing.T) {
		assert.NotPanics(t, func() {
			executeInteractiveCommand(context.Background(), "definitely-not-a-command")
		})
	})

	t.Run("runs a real command", func(t *testing.T) {
		assert.NotPanics(t, func() {
			executeInteractiveCommand(context.Background(), "version")
		})
	})
}
