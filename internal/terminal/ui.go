// Package terminal prints user-facing status lines.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Colors for terminal output. They are empty when output is not a
// terminal.
var Reset, Bold, Dim, Red, Green, Yellow, Blue, Cyan string

var (
	out         io.Writer = os.Stdout
	interactive bool
)

func init() {
	SetOutput(os.Stdout)
}

// SetOutput redirects all output to w and enables colors only when w is a
// terminal.
func SetOutput(w io.Writer) {
	out = w
	f, ok := w.(*os.File)
	interactive = ok && term.IsTerminal(int(f.Fd()))
	if interactive {
		Reset, Bold, Dim = "\033[0m", "\033[1m", "\033[2m"
		Red, Green, Yellow, Blue, Cyan = "\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[36m"
	} else {
		Reset, Bold, Dim, Red, Green, Yellow, Blue, Cyan = "", "", "", "", "", "", "", ""
	}
}

// Interactive reports whether output goes to a terminal.
func Interactive() bool {
	return interactive
}

// Spinner provides a terminal spinner for long-running operations. It
// prints nothing when output is not a terminal.
type Spinner struct {
	mu      sync.Mutex
	message string
	running bool
	done    chan struct{}
	stopped chan struct{}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running || !interactive {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			fmt.Fprintf(out, "\r%s%s %s%s", Cyan, spinnerFrames[i%len(spinnerFrames)], msg, Reset)

			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.done)
	<-s.stopped
	fmt.Fprintf(out, "\r%s\r", strings.Repeat(" ", 80))
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(out, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Error prints a red error message.
func Error(msg string) {
	fmt.Fprintf(out, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Info prints a blue info message.
func Info(msg string) {
	fmt.Fprintf(out, "%s%si%s %s\n", Bold, Blue, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(out, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// Header prints a bold header.
func Header(msg string) {
	fmt.Fprintf(out, "\n%s%s%s\n", Bold, msg, Reset)
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	fmt.Fprintf(out, "  %s%s:%s %s\n", Dim, label, Reset, value)
}

// Divider prints a horizontal line.
func Divider() {
	fmt.Fprintf(out, "%s%s%s\n", Dim, strings.Repeat("─", 60), Reset)
}

// Block prints preformatted text, such as a project outline, verbatim.
func Block(text string) {
	fmt.Fprint(out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(out)
	}
}
