package cli

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/c-bata/go-prompt"

	"firebolt-cli/pkg/fb"
)

// RunInteractive enters the interactive shell. Statement execution rides
// execCursor; the autocompletion engine gets completionCursor so its single
// background catalog read never contends with statement execution.
func RunInteractive(execCursor, completionCursor fb.Cursor, useCSV bool) error {
	fmt.Println("Connection succeeded")

	repl := NewRepl(execCursor, useCSV, os.Stdout)

	if !isTerminal(os.Stdin) {
		return runLineReader(repl)
	}

	repl.SetHighlighter(NewHighlighter())

	var historyEntries []string
	history, err := OpenHistory()
	if err != nil {
		// History is a convenience, the shell works fine without it.
		log.Printf("Warning: query history unavailable: %v", err)
	} else {
		defer history.Close()
		historyEntries = history.Entries()
		repl.SetHistory(history)
	}

	engine := NewAutocompleteEngine(completionCursor)

	p := prompt.New(
		func(in string) { repl.Feed(in) },
		engine.PromptSuggestions,
		prompt.OptionTitle("firebolt-cli"),
		prompt.OptionLivePrefix(repl.livePrefix),
		prompt.OptionHistory(historyEntries),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn:  func(buf *prompt.Buffer) { repl.Interrupt() },
		}),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return repl.State() == StateTerminated
		}),
	)
	p.Run()

	// Run returns on Ctrl-D as well; make sure the farewell is printed
	// exactly once.
	if repl.State() != StateTerminated {
		repl.Terminate()
	}
	return nil
}

// livePrefix switches between the primary and continuation prompt.
func (r *Repl) livePrefix() (string, bool) {
	return r.Prompt(), true
}

// runLineReader drives the controller from non-terminal input, line by
// line, without prompt rendering.
func runLineReader(repl *Repl) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if !repl.Feed(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	repl.FeedEOF()
	return nil
}

// isTerminal reports whether the file is attached to a character device.
func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) != 0
}
