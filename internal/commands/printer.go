package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// printer writes command output to the command's stdout
type printer struct {
	out io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout()}
}

func (p printer) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Success prints a green line
func (p printer) Success(format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.out, format+"\n", a...)
}

// Warn prints a yellow line
func (p printer) Warn(format string, a ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.out, format+"\n", a...)
}

// Fail prints a red line
func (p printer) Fail(format string, a ...interface{}) {
	color.New(color.FgRed).Fprintf(p.out, format+"\n", a...)
}

// prompter reads answers from the command's stdin
type prompter struct {
	p       printer
	scanner *bufio.Scanner
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{p: newPrinter(cmd), scanner: bufio.NewScanner(cmd.InOrStdin())}
}

// Ask prints label and returns the trimmed answer. An empty answer or end of input
// returns def.
func (pr *prompter) Ask(label, def string) string {
	if def != "" {
		pr.p.Printf("%s [%s]: ", label, def)
	} else {
		pr.p.Printf("%s: ", label)
	}
	if !pr.scanner.Scan() {
		pr.p.Println()
		return def
	}
	answer := strings.TrimSpace(pr.scanner.Text())
	if answer == "" {
		return def
	}
	return answer
}

// Confirm asks a yes/no question; only y or Y confirms
func (pr *prompter) Confirm(question string) bool {
	answer := pr.Ask(question+" (y/n)", "")
	return answer == "y" || answer == "Y"
}
