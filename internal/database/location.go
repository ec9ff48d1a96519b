package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Dialect identifies the SQL flavor spoken by the connected server.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// QuoteIdent quotes a table or column name for this dialect.
func (d Dialect) QuoteIdent(name string) string {
	switch d {
	case DialectMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// Location is a logical database location resolved to a database/sql driver
// and its DSN.
type Location struct {
	Driver  string
	Dialect Dialect
	DSN     string
}

// ParseLocation maps a logical location URL of the form
// scheme://[user[:pass]@]host[:port]/schema onto a registered driver.
// postgres URLs pass through unchanged; mysql URLs are rewritten into the
// user:pass@tcp(host:port)/schema form the driver expects.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return Location{Driver: "postgres", Dialect: DialectPostgres, DSN: raw}, nil
	case "mysql":
		return mysqlLocation(u)
	case "":
		return Location{}, fmt.Errorf("database URL %q has no scheme", raw)
	default:
		return Location{}, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

func mysqlLocation(u *url.URL) (Location, error) {
	host := u.Hostname()
	if host == "" {
		return Location{}, fmt.Errorf("database URL %q has no host", u.String())
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}

	schema := strings.TrimPrefix(u.Path, "/")
	if schema == "" {
		return Location{}, fmt.Errorf("database URL %q names no schema", u.String())
	}

	var b strings.Builder
	if u.User != nil {
		b.WriteString(u.User.Username())
		if pass, ok := u.User.Password(); ok {
			b.WriteString(":")
			b.WriteString(pass)
		}
		b.WriteString("@")
	}
	fmt.Fprintf(&b, "tcp(%s:%s)/%s", host, port, schema)
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}

	return Location{Driver: "mysql", Dialect: DialectMySQL, DSN: b.String()}, nil
}
