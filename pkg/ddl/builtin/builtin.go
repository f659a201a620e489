// Package builtin lists the dialect grammars shipped with reposql.
package builtin

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/reposql/pkg/ddl"
	"github.com/leapstack-labs/reposql/pkg/ddl/dialects/derby"
	"github.com/leapstack-labs/reposql/pkg/ddl/dialects/oracle"
	"github.com/leapstack-labs/reposql/pkg/ddl/dialects/postgres"
)

// Parsers returns the built-in grammars in priority order: STANDARD,
// ORACLE, DERBY, POSTGRES. Each call returns a fresh slice.
func Parsers() []ddl.Parser {
	return []ddl.Parser{ddl.Standard(), oracle.Oracle, derby.Derby, postgres.Postgres}
}

// IDs returns the identifiers of the built-in grammars in priority order.
func IDs() []string {
	parsers := Parsers()
	ids := make([]string, len(parsers))
	for i, p := range parsers {
		ids[i] = p.ID()
	}
	return ids
}

// Lookup finds a built-in grammar by identifier or pragma alias,
// ignoring case.
func Lookup(id string) (*ddl.Grammar, bool) {
	for _, p := range Parsers() {
		g := p.(*ddl.Grammar)
		if strings.EqualFold(g.ID(), id) {
			return g, true
		}
		for _, alias := range g.Pragmas() {
			if strings.EqualFold(alias, id) {
				return g, true
			}
		}
	}
	return nil, false
}

// Select returns the named grammars in the given order, for callers that
// override the default priority.
func Select(ids []string) ([]ddl.Parser, error) {
	out := make([]ddl.Parser, 0, len(ids))
	for _, id := range ids {
		g, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown dialect %q (available: %s)", id, strings.Join(IDs(), ", "))
		}
		out = append(out, g)
	}
	return out, nil
}

// NewParsers returns a dispatcher over the built-in grammars.
func NewParsers(opts ...ddl.Option) *ddl.Parsers {
	return ddl.NewParsers(Parsers(), opts...)
}
