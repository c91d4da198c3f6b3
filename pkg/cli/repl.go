package cli

import (
	"fmt"
	"io"
	"strings"

	"firebolt-cli/pkg/fb"
)

// ReplState is the interactive loop's state.
type ReplState int

const (
	// StateIdle shows the primary prompt over an empty buffer.
	StateIdle ReplState = iota
	// StateContinuation shows the continuation prompt over a pending buffer.
	StateContinuation
	// StateTerminated means the session has ended.
	StateTerminated
)

const (
	primaryPrompt      = "firebolt> "
	continuationPrompt = "     ...> "
)

var (
	exitCommands = []string{".exit", ".quit", ".q"}
	helpCommands = []string{".help", ".h"}
)

const tablesCommand = ".tables"

// Repl accumulates input lines into a session buffer, recognizes built-in
// commands and dispatches complete buffers through the statement executor.
// A failed statement is printed and the loop continues; only the
// exit-family built-ins and end-of-input terminate the session.
type Repl struct {
	cursor      fb.Cursor
	useCSV      bool
	out         io.Writer
	buffer      string
	state       ReplState
	highlighter *Highlighter
	history     *History
}

// NewRepl builds a controller dispatching to the given cursor.
func NewRepl(cursor fb.Cursor, useCSV bool, out io.Writer) *Repl {
	return &Repl{cursor: cursor, useCSV: useCSV, out: out}
}

// SetHighlighter makes dispatched statements echo with syntax colors.
func (r *Repl) SetHighlighter(h *Highlighter) { r.highlighter = h }

// SetHistory persists dispatched buffers to the given history store.
func (r *Repl) SetHistory(h *History) { r.history = h }

// State returns the current loop state.
func (r *Repl) State() ReplState { return r.state }

// Prompt returns the prompt string for the current state.
func (r *Repl) Prompt() string {
	if r.state == StateContinuation {
		return continuationPrompt
	}
	return primaryPrompt
}

// isInternalCommand reports whether the text is a recognized built-in.
func isInternalCommand(text string) bool {
	for _, cmd := range exitCommands {
		if text == cmd {
			return true
		}
	}
	for _, cmd := range helpCommands {
		if text == cmd {
			return true
		}
	}
	return text == tablesCommand
}

// inputComplete decides whether the accumulated buffer forms a complete
// unit: empty, terminated by a semicolon, or exactly a built-in command.
func inputComplete(text string) bool {
	return text == "" || strings.HasSuffix(text, ";") || isInternalCommand(text)
}

// Feed consumes one input line. It returns false once the session is
// terminated; until then the caller keeps reading lines and prompting with
// Prompt().
func (r *Repl) Feed(line string) bool {
	if r.buffer != "" {
		r.buffer += "\n"
	}
	r.buffer += line

	text := strings.TrimSpace(r.buffer)
	if !inputComplete(text) {
		r.state = StateContinuation
		return true
	}

	r.buffer = ""
	r.state = StateIdle
	return r.dispatch(text)
}

// Interrupt aborts the pending buffer and returns to the primary prompt. A
// statement already handed to the backend is unaffected.
func (r *Repl) Interrupt() {
	r.buffer = ""
	r.state = StateIdle
}

// Terminate prints the farewell and ends the session. Used for the
// exit-family built-ins and for end-of-input.
func (r *Repl) Terminate() {
	fmt.Fprintln(r.out, "Bye!")
	r.state = StateTerminated
}

// FeedEOF handles end-of-input: a pending buffer is dispatched as-is, then
// the session terminates cleanly.
func (r *Repl) FeedEOF() {
	if text := strings.TrimSpace(r.buffer); text != "" {
		r.buffer = ""
		r.dispatch(text)
	}
	if r.state != StateTerminated {
		r.Terminate()
	}
}

// dispatch handles one complete buffer: built-ins are resolved here,
// everything else goes through the splitter/executor pipeline.
func (r *Repl) dispatch(text string) bool {
	for _, cmd := range exitCommands {
		if text == cmd {
			r.Terminate()
			return false
		}
	}
	for _, cmd := range helpCommands {
		if text == cmd {
			r.printHelp()
			return true
		}
	}
	if text == tablesCommand {
		text = "SHOW tables;"
	}

	sql := strings.TrimSpace(strings.TrimRight(text, ";"))
	if sql == "" {
		return true
	}

	if r.history != nil {
		r.history.Append(sql)
	}
	if r.highlighter != nil {
		fmt.Fprintln(r.out, r.highlighter.Highlight(sql))
	}

	if err := ExecuteAll(r.cursor, sql, r.useCSV, r.out); err != nil {
		fmt.Fprintln(r.out, err)
	}
	return true
}

// printHelp prints the table of built-in commands.
func (r *Repl) printHelp() {
	rows := []struct {
		command string
		help    string
	}{
		{strings.Join(helpCommands, "/"), "Show this help message"},
		{strings.Join(exitCommands, "/"), "Exit firebolt-cli"},
		{tablesCommand, "Show tables in current database"},
	}

	for _, row := range rows {
		fmt.Fprintf(r.out, "%-15s%s\n", row.command, row.help)
	}
}
