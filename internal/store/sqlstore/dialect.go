package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the few syntax differences between SQLite and Postgres.
type Dialect struct {
	Name      string
	numbered  bool
	forUpdate string
	noLimit   string
}

var (
	SQLite   = Dialect{Name: "sqlite", noLimit: "-1"}
	Postgres = Dialect{Name: "postgres", numbered: true, forUpdate: " FOR UPDATE", noLimit: "ALL"}
)

// rebind rewrites ? placeholders to $n for dialects that number them.
func (d Dialect) rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
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
