// Package progress renders long-running-operation feedback on a terminal,
// degrading to plain output when stdout is not a TTY.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Spinner shows an animated indicator for a long-running operation.
// On a non-TTY stdout it prints the message once and animates nothing.
type Spinner struct {
	inner   *spinner.Spinner
	message string
	caps    TerminalCapabilities
}

// Start begins a spinner with the given message.
func Start(message string) *Spinner {
	caps := DetectTerminalCapabilities()
	s := &Spinner{message: message, caps: caps}

	if !caps.IsTTY {
		fmt.Fprintf(os.Stderr, "%s...\n", message)
		return s
	}

	syms := SelectSymbols(caps)
	s.inner = spinner.New(spinner.CharSets[syms.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	s.inner.Suffix = " " + message
	if caps.SupportsColor {
		_ = s.inner.Color("cyan")
	}
	s.inner.Start()
	return s
}

// Stop halts the spinner and prints a success marker.
func (s *Spinner) Stop() {
	s.finish(true)
}

// Fail halts the spinner and prints a failure marker.
func (s *Spinner) Fail() {
	s.finish(false)
}

func (s *Spinner) finish(ok bool) {
	if s.inner != nil {
		s.inner.Stop()
	}
	if !s.caps.IsTTY {
		return
	}
	syms := SelectSymbols(s.caps)
	mark := syms.Checkmark
	paint := color.New(color.FgGreen)
	if !ok {
		mark = syms.Failure
		paint = color.New(color.FgRed)
	}
	if s.caps.SupportsColor {
		fmt.Fprintf(os.Stderr, "%s %s\n", paint.Sprint(mark), s.message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", mark, s.message)
}
