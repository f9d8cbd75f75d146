package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// statusLabelWidth fits the longest preflight check name plus its colon.
const statusLabelWidth = 22

// statusPrinter writes the status report's aligned lines, colorizing only
// when the destination is a terminal.
type statusPrinter struct {
	out   io.Writer
	color bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, color: writerIsTerminal(out)}
}

func (p *statusPrinter) section(title string) {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	p.println(ansiBlue, heading)
	p.println(ansiBlue, strings.Repeat("-", len(heading)))
}

// check prints one preflight result. Failures render as warnings; the
// summary line at the end of the report carries the overall verdict.
func (p *statusPrinter) check(name string, passed bool, detail string) {
	if passed {
		p.line(ansiGreen, name, "OK", detail)
		return
	}
	p.line(ansiYellow, name, "WARN", detail)
}

func (p *statusPrinter) ok(label, message string) {
	p.line(ansiGreen, label, "OK", message)
}

func (p *statusPrinter) info(label, message string) {
	p.line(ansiBlue, label, "INFO", message)
}

func (p *statusPrinter) fail(label, message string) {
	p.line(ansiRed, label, "ERROR", message)
}

func (p *statusPrinter) blank() {
	fmt.Fprintln(p.out)
}

func (p *statusPrinter) line(color, label, state, message string) {
	status := fmt.Sprintf("[%s]", state)
	if message != "" {
		status += " " + message
	}
	p.println(color, fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status))
}

func (p *statusPrinter) println(color, line string) {
	if p.color && color != "" {
		fmt.Fprintln(p.out, color+line+ansiReset)
		return
	}
	fmt.Fprintln(p.out, line)
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
