package sqltext

import "testing"

func TestProducesRows(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1", true},
		{"select * from t", true},
		{"  WITH cte AS (SELECT 1) SELECT * FROM cte", true},
		{"Show tables", true},
		{"DESCRIBE t", true},
		{"explain select 1", true},
		{"CREATE TABLE x (id INT)", false},
		{"INSERT INTO t VALUES (1)", false},
		{"DROP TABLE t", false},
		{"SET advanced_mode = 1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ProducesRows(tt.sql); got != tt.want {
			t.Errorf("ProducesRows(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}

func TestProducesRows_SkipsLeadingComments(t *testing.T) {
	tests := []struct {
		sql  string
		want bool
	}{
		{"-- leading comment\nSELECT 1", true},
		{"/* block */ SELECT 1", true},
		{"/* block */ -- line\n  INSERT INTO t VALUES (1)", false},
	}

	for _, tt := range tests {
		if got := ProducesRows(tt.sql); got != tt.want {
			t.Errorf("ProducesRows(%q) = %v, want %v", tt.sql, got, tt.want)
		}
	}
}

func TestLeadingKeyword(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT 1", "SELECT"},
		{"\n\t select 1", "select"},
		{"-- c\nWITH x AS (SELECT 1)", "WITH"},
		{"/* c */", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := LeadingKeyword(tt.sql); got != tt.want {
			t.Errorf("LeadingKeyword(%q) = %q, want %q", tt.sql, got, tt.want)
		}
	}
}
