package obs

import (
	"strings"
	"testing"
)

func TestSQLOperation(t *testing.T) {
	cases := map[string]string{
		"SELECT 1":                        "select",
		"  insert into orders values (1)": "insert",
		"UPDATE promo_codes SET x = 1":    "update",
		"":                                "query",
		"   ":                             "query",
	}
	for sql, want := range cases {
		if got := sqlOperation(sql); got != want {
			t.Fatalf("sqlOperation(%q) = %q, want %q", sql, got, want)
		}
	}
}

func TestTruncateSQLCapsLongStatements(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 400)
	got := truncateSQL(long)
	if len(got) != maxStatementLen+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated statement, got %d chars", len(got))
	}
	if truncateSQL(" SELECT 1 ") != "SELECT 1" {
		t.Fatal("expected short statements trimmed, not truncated")
	}
}
