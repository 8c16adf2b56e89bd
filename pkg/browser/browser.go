// Package browser opens URLs in the OS default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"
)

// execCommand is swapped in tests.
var execCommand = func(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// OpenURL launches the OS default browser at url. The browser process is
// started detached; a reaper goroutine waits on it so it never lingers as
// a zombie.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = execCommand("open", url)
	case "windows":
		cmd = execCommand("cmd", "/c", "start", url)
	default: // linux, freebsd, etc
		cmd = execCommand("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug().Str("component", "browser").Err(err).Msg("Browser launcher exited with error")
		}
	}()
	return nil
}
