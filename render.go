package deployprep

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const BANNER_WIDTH = 60

// Console is the operator facing output. Logs go to the AppLogger instead.
type Console struct {
	out     io.Writer
	header  *color.Color
	command *color.Color
	success *color.Color
	failure *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		command: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

func (c *Console) Banner(title string) {
	line := strings.Repeat("=", BANNER_WIDTH)
	fmt.Fprintln(c.out, line)
	c.header.Fprintln(c.out, title)
	fmt.Fprintln(c.out, line)
}

func (c *Console) Rule() {
	fmt.Fprintln(c.out, strings.Repeat("=", BANNER_WIDTH))
}

func (c *Console) Header(msg string) {
	c.header.Fprintf(c.out, "\n>>> %s\n", msg)
}

func (c *Console) Step(format string, args ...any) {
	fmt.Fprintf(c.out, "→ %s\n", fmt.Sprintf(format, args...))
}

func (c *Console) Command(line string) {
	c.command.Fprintf(c.out, "$ %s\n", line)
}

func (c *Console) Text(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Success(format string, args ...any) {
	c.success.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Error(format string, args ...any) {
	c.failure.Fprintf(c.out, format+"\n", args...)
}

// Lines prints each entry on its own line.
func (c *Console) Lines(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}
