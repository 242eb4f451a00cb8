package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProcessAlive(t *testing.T) {
	require.True(t, ProcessAlive(os.Getpid()))
	require.False(t, ProcessAlive(0))
	require.False(t, ProcessAlive(-1))
}

func TestExitInfoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "exit.json")
	code := 3
	in := ExitInfo{
		Bin:       "uvicorn",
		Argv:      []string{"uvicorn", "src.main:app", "--host", "0.0.0.0", "--port", "8000"},
		PID:       1234,
		StartedAt: time.Now().Add(-time.Minute).UTC(),
		ExitedAt:  time.Now().UTC(),
		ExitCode:  &code,
	}
	require.NoError(t, WriteExitInfo(path, in))

	out, err := ReadExitInfo(path)
	require.NoError(t, err)
	require.Equal(t, in.Bin, out.Bin)
	require.Equal(t, in.Argv, out.Argv)
	require.NotNil(t, out.ExitCode)
	require.Equal(t, 3, *out.ExitCode)
}

func TestExitInfoMissingPath(t *testing.T) {
	require.Error(t, WriteExitInfo("", ExitInfo{}))
	_, err := ReadExitInfo("")
	require.Error(t, err)
}
