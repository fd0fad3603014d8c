package logger

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr redirects os.Stderr for the duration of fn and returns what
// was written. The logger binds its handler to os.Stderr at Initialize, so
// the swap has to happen before fn calls Initialize.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestWithServiceTagsRecords(t *testing.T) {
	out := captureStderr(t, func() {
		Initialize("info", "json")
		WithService("jobs").Info("job completed", "job", "FlagOverdueRentals")
	})

	assert.Contains(t, out, `"service":"jobs"`)
	assert.Contains(t, out, `"job":"FlagOverdueRentals"`)
}

func TestInitializeLevelFiltering(t *testing.T) {
	out := captureStderr(t, func() {
		Initialize("warn", "text")
		Info("should be filtered")
		Warn("should appear")
	})

	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
}
