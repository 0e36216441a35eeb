package repoguard

import (
	"fmt"
	"regexp"
)

// tenantFilterPattern matches a "tenant_id = $1" predicate, allowing the
// usual whitespace variations. $1 is reserved for the tenant id across the
// whole package: Query always supplies it as the first bind parameter.
var tenantFilterPattern = regexp.MustCompile(`(?i)tenant_id\s*=\s*\$1\b`)

// Query is a SQL statement paired with its bind arguments beyond $1, which
// Guard.Query always fills in with the current tenant id. The only way to
// obtain one is MustFilterTenant, so a caller cannot construct a Query that
// skipped the filter check.
type Query struct {
	sql  string
	args []any
}

// MustFilterTenant builds a Query from sql and args, where args are bound
// starting at $2 ($1 is reserved for the tenant id). It panics if sql has
// no "tenant_id = $1" predicate — this is meant to fail loudly in
// development and in tests, never silently return unfiltered rows.
func MustFilterTenant(sql string, args ...any) Query {
	if !tenantFilterPattern.MatchString(sql) {
		panic(fmt.Errorf("%w: %s", ErrMissingTenantFilter, sql))
	}
	return Query{sql: sql, args: args}
}
