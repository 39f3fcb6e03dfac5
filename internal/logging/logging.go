// Package logging provides the levelled console logger used by the vernam commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes prefixed messages. Info goes to Out unless Quiet is set, debug output
// only appears with Verbose, and warnings and errors always go to Err.
// Nil writers default to the process standard streams.
type Logger struct {
	Quiet   bool
	Verbose bool

	Out io.Writer
	Err io.Writer
}

func (l Logger) Infof(msg string, args ...any) {
	if !l.Quiet {
		fmt.Fprintf(l.out(), msg+"\n", args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Verbose {
		fmt.Fprintf(l.err(), color.CyanString("[debug] ")+msg+"\n", args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	fmt.Fprintf(l.err(), color.YellowString("[warn] ")+msg+"\n", args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	fmt.Fprintf(l.err(), color.RedString("[error] ")+msg+"\n", args...)
}

func (l Logger) out() io.Writer {
	if l.Out == nil {
		return os.Stdout
	}

	return l.Out
}

func (l Logger) err() io.Writer {
	if l.Err == nil {
		return os.Stderr
	}

	return l.Err
}
