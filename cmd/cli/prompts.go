package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

/* CLI Prompts */
type StdinPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{reader: bufio.NewReader(in), out: out}
}

// Ask blocks until a line is entered. End of input reads as an empty answer.
func (p *StdinPrompter) Ask(label string) string {
	fmt.Fprint(p.out, label)
	s, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(s)
}

func (p *StdinPrompter) Confirm(label string) bool {
	s := strings.ToLower(p.Ask(label))
	return s == "y" || s == "yes"
}
