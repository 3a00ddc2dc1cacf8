package sqldb

import (
	"strconv"
	"strings"
)

// Dialect es lo único que cambia entre la base embebida y Postgres.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// rebind reescribe los "?" como $1..$n para Postgres.
// Las consultas de este paquete no tienen "?" dentro de literales.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
