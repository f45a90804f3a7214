package deployprep

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
)

type OSCommander interface {
	RunProgram(workdir string, name string, args ...string) CommandResult
}
type OSPather interface {
	LookProgram(cmd string) (string, error)
}
type OSStarter interface {
	StartProgram(name string, args ...string) error
}

type OSCommand interface {
	OSCommander
	OSPather
	OSStarter
}

type AppOS struct{}

// RunProgram blocks until the process exits. A program that cannot be
// started is reported as a failed result with the cause in Stderr.
func (AppOS) RunProgram(workdir string, name string, args ...string) CommandResult {
	cmd := exec.Command(name, args...)
	cmd.Dir = workdir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	result := CommandResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Succeeded: err == nil,
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && result.Stderr == "" {
		result.Stderr = err.Error()
	}
	return result
}

func (AppOS) LookProgram(cmd string) (string, error) {
	return exec.LookPath(cmd)
}

// StartProgram launches the process without waiting for it.
func (AppOS) StartProgram(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// OpenBrowser asks the desktop to open url. The outcome is not checked.
func OpenBrowser(starter OSStarter, url string) {
	switch runtime.GOOS {
	case "darwin":
		_ = starter.StartProgram("open", url)
	case "windows":
		_ = starter.StartProgram("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		_ = starter.StartProgram("xdg-open", url)
	}
}
