package ddl

import (
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// grantObjectTypes are the object kinds that may precede the object name
// in GRANT and REVOKE.
var grantObjectTypes = [][]string{
	{"TABLE"}, {"DOMAIN"}, {"COLLATION"}, {"CHARACTER", "SET"}, {"TRANSLATION"},
	{"SEQUENCE"}, {"FUNCTION"}, {"PROCEDURE"}, {"SCHEMA"}, {"DATABASE"}, {"TYPE"},
}

func grant(c *Context, parent *Node) (*Node, error) {
	n := parent.AddChild("grant", TypeGrant)
	if err := parsePrivileges(c, n); err != nil {
		return n, err
	}
	if err := parseGrantObject(c, n); err != nil {
		return n, err
	}
	if err := c.Consume("TO"); err != nil {
		return n, err
	}
	if err := parseGrantees(c, n); err != nil {
		return n, err
	}
	if c.CanConsume("WITH", "GRANT", "OPTION") {
		n.SetProperty(PropWithGrantOption, true)
	}
	return n, nil
}

func revoke(c *Context, parent *Node) (*Node, error) {
	n := parent.AddChild("revoke", TypeRevoke)
	if c.CanConsume("GRANT", "OPTION", "FOR") {
		n.SetProperty(PropGrantOptionFor, true)
	}
	if err := parsePrivileges(c, n); err != nil {
		return n, err
	}
	if err := parseGrantObject(c, n); err != nil {
		return n, err
	}
	if err := c.Consume("FROM"); err != nil {
		return n, err
	}
	if err := parseGrantees(c, n); err != nil {
		return n, err
	}
	c.ParseDropBehavior(n)
	return n, nil
}

func parsePrivileges(c *Context, n *Node) error {
	if c.CanConsume("ALL", "PRIVILEGES") || c.CanConsume("ALL") {
		n.AddChild("ALL PRIVILEGES", TypePrivilege)
		return nil
	}
	for {
		var words []string
		for c.Peek().Kind.IsWord() && !c.Matches("ON") {
			words = append(words, strings.ToUpper(c.Next().Text))
		}
		if len(words) == 0 {
			return c.Expected("a privilege")
		}
		p := n.AddChild(strings.Join(words, " "), TypePrivilege)
		if c.Matches("(") {
			cols, err := c.ParseNameList()
			if err != nil {
				return err
			}
			p.SetProperty(PropColumnNames, cols)
		}
		if !c.CanConsume(",") {
			return nil
		}
	}
}

func parseGrantObject(c *Context, n *Node) error {
	if err := c.Consume("ON"); err != nil {
		return err
	}
	for _, kind := range grantObjectTypes {
		// The kind is only a prefix when a name follows it.
		if next := c.PeekAt(len(kind)); c.Matches(kind...) && (next.Kind.IsWord() || next.Kind == token.QuotedIdentifier) {
			c.CanConsume(kind...)
			n.SetProperty(PropObjectType, strings.Join(kind, " "))
			break
		}
	}
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	n.Rename(name)
	return nil
}

func parseGrantees(c *Context, n *Node) error {
	for {
		name, err := c.ParseName()
		if err != nil {
			return err
		}
		n.AddChild(name, TypeGrantee)
		if !c.CanConsume(",") {
			return nil
		}
	}
}

func insertInto(c *Context, parent *Node) (*Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeInsert)
	if c.Matches("(") && !c.Matches("(", "SELECT") {
		cols, err := c.ParseNameList()
		if err != nil {
			return n, err
		}
		n.SetProperty(PropColumnNames, cols)
	}
	if !c.CanConsume("VALUES") {
		query := c.CaptureUntilEnd()
		if query == "" {
			return n, c.Expected("VALUES or a query")
		}
		n.SetProperty(PropQueryExpression, query)
		return n, nil
	}
	for {
		row, err := c.ParseParenthesized()
		if err != nil {
			return n, err
		}
		v := n.AddChild("row", TypeInsertValue)
		v.SetProperty(PropValue, row)
		if !c.CanConsume(",") {
			return n, nil
		}
	}
}
