/*
File    : camps/cmd/camps/main.go

Package main is the CAMPS command-line entry point (spec.md §6):
read a source file, run it through lexer -> parser -> eval, and report
whichever of the three error tiers (spec.md §7) fails first.
*/
package main

import (
	"bufio"
	"errors"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/camps-lang/camps/env"
	"github.com/camps-lang/camps/eval"
	"github.com/camps-lang/camps/lexer"
	"github.com/camps-lang/camps/parser"
)

// defaultSource is the file run when no argument is given (spec.md §6).
const defaultSource = "source.txt"

var redColor = color.New(color.FgRed)

func main() {
	fileName, ok := sourceFileName(os.Args[1:])
	if !ok {
		// spec.md §6: "an error line `Usage: camps <file name>` is printed
		// and the process exits with status 0" -- a usage message, not a
		// failure.
		redColor.Fprintln(os.Stderr, "Usage: camps <file name>")
		os.Exit(0)
	}

	src, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", fileName, err)
		os.Exit(1)
	}

	if err := run(string(src)); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// sourceFileName resolves spec.md §6's argument-count rule: zero args uses
// defaultSource, exactly one uses that path, two or more is a usage error.
func sourceFileName(args []string) (string, bool) {
	switch len(args) {
	case 0:
		return defaultSource, true
	case 1:
		return args[0], true
	default:
		return "", false
	}
}

// run parses and evaluates src, wiring INPUT to a terminal-aware reader.
func run(src string) error {
	blk, err := parser.Parse(src)
	if err != nil {
		return err
	}

	ev := eval.New()
	ev.Out = os.Stdout
	ev.In = newLineReader(os.Stdin)
	return ev.Run(blk)
}

// reportError prints err in red, tagged by its error tier (spec.md §7).
func reportError(err error) {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var runErr *env.RuntimeError
	switch {
	case errors.As(err, &lexErr):
		redColor.Fprintf(os.Stderr, "[LEX ERROR] %s\n", err)
	case errors.As(err, &parseErr):
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", err)
	case errors.As(err, &runErr):
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %s\n", err)
	default:
		redColor.Fprintf(os.Stderr, "[ERROR] %s\n", err)
	}
}

// scannerReader adapts a bufio.Scanner to eval.LineReader for piped/non-TTY
// stdin (spec.md §6: INPUT "reads exactly one line ... and strips a
// trailing newline").
type scannerReader struct {
	sc *bufio.Scanner
}

func (r *scannerReader) ReadLine() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", os.ErrClosed
	}
	return r.sc.Text(), nil
}

// readlineReader adapts chzyer/readline to eval.LineReader for INPUT when
// stdin is an interactive terminal, giving history and line editing the
// way the teacher's repl.Repl does for its own REPL prompt.
type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine() (string, error) {
	return r.rl.Readline()
}

// newLineReader picks readlineReader for a TTY stdin and scannerReader
// otherwise (SPEC_FULL.md: "falls back to a plain bufio.Scanner when
// stdin is not a TTY, e.g. piped/test input").
func newLineReader(in *os.File) eval.LineReader {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		rl, err := readline.New("")
		if err == nil {
			return &readlineReader{rl: rl}
		}
	}
	return &scannerReader{sc: bufio.NewScanner(in)}
}
