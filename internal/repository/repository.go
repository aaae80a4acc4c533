// Package repository holds the SQL access for the admin tables. Queries are
// written with '?' placeholders and rebound per dialect.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Page is a normalised LIMIT/OFFSET window.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s's own
// wildcards escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
