package deployprep

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewConsole(&buf), &buf
}

type MockAppOS struct {
	RunFunc   func(workdir string, name string, args ...string) CommandResult
	LookFunc  func(cmd string) (string, error)
	StartFunc func(name string, args ...string) error
	Calls     [][]string
}

func (m *MockAppOS) RunProgram(workdir string, name string, args ...string) CommandResult {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.RunFunc(workdir, name, args...)
}

func (m *MockAppOS) LookProgram(cmd string) (string, error) {
	return m.LookFunc(cmd)
}

func (m *MockAppOS) StartProgram(name string, args ...string) error {
	if m.StartFunc == nil {
		return nil
	}
	return m.StartFunc(name, args...)
}

type scriptedPrompter struct {
	answers  []string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) Ask(label string) string {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return ""
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a
}

func (p *scriptedPrompter) Confirm(label string) bool {
	p.asked = append(p.asked, label)
	if len(p.confirms) == 0 {
		return false
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c
}
