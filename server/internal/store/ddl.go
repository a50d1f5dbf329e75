package store

import "strings"

// SplitStatements splits an embedded schema file into individual statements.
// It splits on semicolons and drops empty fragments.
func SplitStatements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	var out []string
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
