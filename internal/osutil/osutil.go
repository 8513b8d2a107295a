// Package osutil holds platform constants and helpers
package osutil

import (
	"errors"
	"os/exec"
	"runtime"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	DirPermission  = 0o755
	FilePermission = 0o600
)

var errUnsupportedPlatform = errors.New("unsupported platform")

// openCommand returns the command that opens url in the default browser.
func openCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case Linux:
		return exec.Command("xdg-open", url), nil
	case Windows:
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case Darwin:
		return exec.Command("open", url), nil
	default:
		return nil, errUnsupportedPlatform
	}
}

// OpenURL opens url in the default browser without waiting for it.
func OpenURL(url string) error {
	cmd, err := openCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}

	return cmd.Start()
}
