package browser

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenURLUsesPlatformLauncher(t *testing.T) {
	var gotName string
	var gotArgs []string

	orig := execCommand
	t.Cleanup(func() { execCommand = orig })
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		// Substitute a no-op command so the test doesn't open anything.
		return exec.Command("true")
	}

	require.NoError(t, OpenURL("http://localhost:8000/"))
	require.NotEmpty(t, gotName)
	require.Contains(t, gotArgs, "http://localhost:8000/")
}

func TestOpenURLStartFailure(t *testing.T) {
	orig := execCommand
	t.Cleanup(func() { execCommand = orig })
	execCommand = func(string, ...string) *exec.Cmd {
		return exec.Command("/nonexistent-launcher-binary")
	}

	require.Error(t, OpenURL("http://localhost:8000/"))
}
