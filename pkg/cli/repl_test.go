package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRepl_QuitExecutesNothing(t *testing.T) {
	for _, cmd := range []string{".exit", ".quit", ".q"} {
		cursor := &fakeCursor{}
		var out bytes.Buffer
		repl := NewRepl(cursor, false, &out)

		if repl.Feed(cmd) {
			t.Errorf("%s should terminate the session", cmd)
		}
		if repl.State() != StateTerminated {
			t.Errorf("state after %s = %v, want StateTerminated", cmd, repl.State())
		}
		if len(cursor.executed) != 0 {
			t.Errorf("%s executed %d statements, want 0", cmd, len(cursor.executed))
		}
		if !strings.Contains(out.String(), "Bye!") {
			t.Errorf("missing farewell after %s", cmd)
		}
	}
}

func TestRepl_EmptyInputExecutesNothing(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	for _, line := range []string{" ", "\t ", "   ;;;;   ", ";", ";;"} {
		if !repl.Feed(line) {
			t.Fatalf("input %q should not terminate the session", line)
		}
		if repl.State() != StateIdle {
			t.Errorf("state after %q = %v, want StateIdle", line, repl.State())
		}
	}
	if len(cursor.executed) != 0 {
		t.Errorf("executed %d statements, want 0", len(cursor.executed))
	}
}

func TestRepl_ContinuationUntilSemicolon(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	repl.Feed("SELECT id")
	if repl.State() != StateContinuation {
		t.Fatalf("state = %v, want StateContinuation", repl.State())
	}
	if repl.Prompt() != "     ...> " {
		t.Errorf("continuation prompt = %q", repl.Prompt())
	}

	repl.Feed("FROM t")
	if repl.State() != StateContinuation {
		t.Fatalf("state = %v, want StateContinuation after second incomplete line", repl.State())
	}

	repl.Feed("WHERE x = 1;")
	if repl.State() != StateIdle {
		t.Fatalf("state = %v, want StateIdle after dispatch", repl.State())
	}
	if repl.Prompt() != "firebolt> " {
		t.Errorf("primary prompt = %q", repl.Prompt())
	}

	if len(cursor.executed) != 1 {
		t.Fatalf("executed %d statements, want 1", len(cursor.executed))
	}
	if cursor.executed[0] != "SELECT id\nFROM t\nWHERE x = 1" {
		t.Errorf("dispatched statement = %q", cursor.executed[0])
	}
}

func TestRepl_MultipleStatementsInOneBuffer(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	repl.Feed("SELECT 1; SELECT 2;")

	if len(cursor.executed) != 2 {
		t.Fatalf("executed %d statements, want 2", len(cursor.executed))
	}
	if cursor.executed[0] != "SELECT 1" || cursor.executed[1] != "SELECT 2" {
		t.Errorf("dispatched statements = %v", cursor.executed)
	}
}

func TestRepl_HelpListsBuiltins(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	for _, cmd := range []string{".help", ".h"} {
		out.Reset()
		if !repl.Feed(cmd) {
			t.Fatalf("%s should not terminate the session", cmd)
		}
		for _, want := range []string{".help/.h", ".exit/.quit/.q", ".tables"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("help output missing %q:\n%s", want, out.String())
			}
		}
	}
	if len(cursor.executed) != 0 {
		t.Errorf("help executed %d statements, want 0", len(cursor.executed))
	}
}

func TestRepl_TablesRewrite(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	repl.Feed(".tables")

	if len(cursor.executed) != 1 || cursor.executed[0] != "SHOW tables" {
		t.Errorf("dispatched statements = %v, want [SHOW tables]", cursor.executed)
	}
}

func TestRepl_ExecutionErrorDoesNotTerminate(t *testing.T) {
	cursor := &fakeCursor{failOn: map[string]error{"wrong sql": errors.New("sql execution failed")}}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	if !repl.Feed("wrong sql;") {
		t.Fatal("execution failure must not terminate the session")
	}
	if repl.State() != StateIdle {
		t.Errorf("state = %v, want StateIdle", repl.State())
	}
	if !strings.Contains(out.String(), "sql execution failed") {
		t.Errorf("error message not printed:\n%s", out.String())
	}

	repl.Feed("SELECT 1;")
	if len(cursor.executed) != 2 {
		t.Errorf("session should keep executing after a failure, executed %v", cursor.executed)
	}
}

func TestRepl_InterruptAbortsBuffer(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	repl.Feed("SELECT id")
	repl.Interrupt()
	if repl.State() != StateIdle {
		t.Fatalf("state after interrupt = %v, want StateIdle", repl.State())
	}

	repl.Feed("SELECT 2;")
	if len(cursor.executed) != 1 || cursor.executed[0] != "SELECT 2" {
		t.Errorf("executed = %v, want only the statement after the interrupt", cursor.executed)
	}
}

func TestRepl_FeedEOF(t *testing.T) {
	cursor := &fakeCursor{}
	var out bytes.Buffer
	repl := NewRepl(cursor, false, &out)

	repl.Feed("SELECT 5")
	repl.FeedEOF()

	if repl.State() != StateTerminated {
		t.Errorf("state = %v, want StateTerminated", repl.State())
	}
	if len(cursor.executed) != 1 || cursor.executed[0] != "SELECT 5" {
		t.Errorf("pending buffer should be dispatched on EOF, executed = %v", cursor.executed)
	}
	if !strings.Contains(out.String(), "Bye!") {
		t.Errorf("missing farewell:\n%s", out.String())
	}
}

func TestInputComplete(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"SELECT 1;", true},
		{".quit", true},
		{".tables", true},
		{"SELECT 1", false},
		{".unknown", false},
	}

	for _, tt := range tests {
		if got := inputComplete(tt.text); got != tt.want {
			t.Errorf("inputComplete(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
