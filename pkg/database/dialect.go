package database

import (
	"strconv"
	"strings"
)

// Dialect covers the SQL differences between the supported engines.
type Dialect interface {
	// Rebind rewrites '?' placeholders into the engine's bind syntax.
	Rebind(query string) string
	QuoteIdent(name string) string
	// Like is the case-insensitive pattern match operator.
	Like() string
	ListTablesQuery() string
}

type postgresDialect struct{}

func (postgresDialect) Rebind(query string) string {
	var (
		b     strings.Builder
		n     int
		quote bool
	)
	b.Grow(len(query) + 8)

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quote = !quote
			b.WriteByte(c)
		case c == '?' && !quote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (postgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgresDialect) Like() string { return "ILIKE" }

func (postgresDialect) ListTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`
}

type mysqlDialect struct{}

func (mysqlDialect) Rebind(query string) string { return query }

func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlDialect) Like() string { return "LIKE" }

func (mysqlDialect) ListTablesQuery() string {
	return `SELECT table_name FROM information_schema.tables
WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
ORDER BY table_name`
}

var (
	PostgresDialect Dialect = postgresDialect{}
	MySQLDialect    Dialect = mysqlDialect{}
)
