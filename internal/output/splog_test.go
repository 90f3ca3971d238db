package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"autofix.dev/autofix/internal/output"
)

func TestSplogQuiet(t *testing.T) {
	t.Setenv("AUTOFIX_LOG_FILE", "")
	splog := output.NewSplog()
	require.False(t, splog.IsQuiet())

	splog.SetQuiet(true)
	require.True(t, splog.IsQuiet())

	splog.SetQuiet(false)
	require.False(t, splog.IsQuiet())
}

func TestSplogFileLogging(t *testing.T) {
	t.Run("records messages to the configured file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "autofix.log")

		splog, err := output.NewSplogWithConfig(logFile)
		require.NoError(t, err)
		// Quiet mode suppresses the console; the file handler still records
		splog.SetQuiet(true)

		splog.Info("committed %d file(s)", 3)
		splog.Debug("push took %s", "120ms")
		require.NoError(t, splog.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		require.Contains(t, string(data), "committed 3 file(s)")
		require.Contains(t, string(data), "push took 120ms")
	})

	t.Run("close without a file handler is a no-op", func(t *testing.T) {
		t.Setenv("AUTOFIX_LOG_FILE", "")
		splog := output.NewSplog()
		require.NoError(t, splog.Close())
	})
}
