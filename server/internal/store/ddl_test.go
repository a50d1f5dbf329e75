package store

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	ddl := `
CREATE TABLE a (x INT);

  CREATE INDEX a_x ON a(x) ;
;
`
	got := SplitStatements(ddl)
	want := []string{"CREATE TABLE a (x INT)", "CREATE INDEX a_x ON a(x)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitStatements = %q, want %q", got, want)
	}
}

func TestSplitStatements_Empty(t *testing.T) {
	if got := SplitStatements(" \n ; "); len(got) != 0 {
		t.Fatalf("expected no statements, got %q", got)
	}
}
