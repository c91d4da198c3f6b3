package sqltext

import (
	"strings"
	"testing"
)

func TestShortStatement_CollapsesWhitespace(t *testing.T) {
	sql := "SELECT *\n\tFROM   t\n  WHERE x = 1"
	got := ShortStatement(sql, 80)
	want := "SELECT * FROM t WHERE x = 1"
	if got != want {
		t.Errorf("ShortStatement = %q, want %q", got, want)
	}
}

func TestShortStatement_StripsComments(t *testing.T) {
	sql := "-- header comment\nSELECT 1 /* inline */ + 2"
	got := ShortStatement(sql, 80)
	want := "SELECT 1 + 2"
	if got != want {
		t.Errorf("ShortStatement = %q, want %q", got, want)
	}
}

func TestShortStatement_Truncates(t *testing.T) {
	sql := "SELECT " + strings.Repeat("x", 200)
	got := ShortStatement(sql, 80)
	if len(got) != 84 {
		t.Errorf("truncated length = %d, want 84", len(got))
	}
	if !strings.HasSuffix(got, " ...") {
		t.Errorf("truncated statement should end with ellipsis marker, got %q", got)
	}
}

func TestShortStatement_NoTruncationAtLimit(t *testing.T) {
	sql := strings.Repeat("a", 80)
	if got := ShortStatement(sql, 80); got != sql {
		t.Errorf("statement at limit should not be truncated, got %q", got)
	}
}

func TestShortStatement_KeepsQuotedText(t *testing.T) {
	sql := "SELECT '-- not a comment' FROM t"
	if got := ShortStatement(sql, 80); got != sql {
		t.Errorf("ShortStatement = %q, want %q", got, sql)
	}
}
