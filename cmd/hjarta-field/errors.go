package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printError writes message to w, in red when w is a terminal.
func printError(w io.Writer, message string) {
	printer := color.New(color.FgRed, color.Bold)

	if isTerminal(w) {
		printer.EnableColor()
	} else {
		printer.DisableColor()
	}

	_, _ = printer.Fprintln(w, "error: "+message)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
