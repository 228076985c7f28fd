package sqldb

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect captures the differences between the SQL backends we support.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case SQLite:
		return SQLite, nil
	case Postgres, "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported sql dialect %q", s)
	}
}

// Rebind rewrites '?' placeholders into the dialect's positional form.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(q string) string {
	if d != Postgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
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

// Placeholders returns n comma-separated '?' markers for an IN (...) list.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// TimeArg converts t into a bind value: SQLite stores RFC 3339 text,
// Postgres binds time.Time natively.
func (d Dialect) TimeArg(t time.Time) any {
	if d == SQLite {
		return t.UTC().Format(time.RFC3339)
	}
	return t
}

// ParseTime accepts whatever the driver hands back for a timestamp column.
func ParseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case string:
		return ParseTimeText(t)
	case []byte:
		return ParseTimeText(string(t))
	default:
		return time.Time{}, fmt.Errorf("unsupported time value %T", v)
	}
}

// ParseTimeText parses RFC 3339, "YYYY-MM-DD HH:MM:SS", or a bare date.
// Empty input yields the zero time.
func ParseTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", s)
}
