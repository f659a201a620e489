package ddl

import (
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// Clause is a keyword phrase accepted inside a statement, optionally
// followed by a value.
type Clause struct {
	Phrase string
	Value  bool
}

// Flag is a clause without a value.
func Flag(phrase string) Clause { return Clause{Phrase: phrase} }

// Valued is a clause followed by a value.
func Valued(phrase string) Clause { return Clause{Phrase: phrase, Value: true} }

// ParseClauses records matching clauses as options on n until the
// statement ends or no clause matches. Longer phrases are tried first.
func (c *Context) ParseClauses(n *Node, clauses ...Clause) error {
	rules := sortByPhrase(clauses, func(cl Clause) []string { return splitPhrase(cl.Phrase) })
	for !c.AtEnd() {
		cl, ok := matchClause(c.s, rules)
		if !ok {
			return nil
		}
		words := splitPhrase(cl.Phrase)
		c.s.CanConsume(words...)
		value := ""
		if cl.Value {
			var err error
			if value, err = c.ParseOptionValue(); err != nil {
				return err
			}
		}
		AddOption(n, strings.ToUpper(strings.Join(words, " ")), value)
	}
	return nil
}

func matchClause(s *Stream, rules []Clause) (Clause, bool) {
	for _, r := range rules {
		if s.Matches(splitPhrase(r.Phrase)...) {
			return r, true
		}
	}
	return Clause{}, false
}

// ParseOptionValue reads the value of a clause: a parenthesised group, a
// string, a signed number or a possibly qualified name with optional
// arguments. An "=" before the value is skipped.
func (c *Context) ParseOptionValue() (string, error) {
	c.CanConsume("=")
	t := c.s.Peek()
	switch {
	case t.Kind == token.Symbol && t.Text == "(":
		inner, err := c.ParseParenthesized()
		return "(" + inner + ")", err
	case t.Kind == token.String:
		c.s.Next()
		return "'" + strings.ReplaceAll(t.Text, "'", "''") + "'", nil
	case t.Kind == token.Number, t.Kind == token.Symbol && (t.Text == "-" || t.Text == "+"):
		return c.ParseNumber()
	case isNameToken(t):
		name, err := c.ParseName()
		if err != nil {
			return "", err
		}
		if c.Matches("(") {
			args, err := c.ParseParenthesized()
			return name + "(" + args + ")", err
		}
		return name, nil
	default:
		return "", c.Expected("an option value")
	}
}

// ValueOption returns an option handler recording phrase and its value.
func ValueOption(phrase string) OptionHandler {
	return func(c *Context, n *Node) error {
		v, err := c.ParseOptionValue()
		if err != nil {
			return err
		}
		AddOption(n, phrase, v)
		return nil
	}
}

// FlagOption returns an option handler recording phrase without a value.
func FlagOption(phrase string) OptionHandler {
	return func(_ *Context, n *Node) error {
		AddOption(n, phrase, "")
		return nil
	}
}
