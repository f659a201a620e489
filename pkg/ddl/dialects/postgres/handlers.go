package postgres

import (
	"github.com/leapstack-labs/reposql/pkg/ddl"
	"github.com/leapstack-labs/reposql/pkg/token"
)

func orReplace(h ddl.StatementHandler) ddl.StatementHandler {
	return func(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
		n, err := h(c, parent)
		if n != nil {
			n.SetProperty(ddl.PropOrReplace, true)
		}
		return n, err
	}
}

func createIndex(kind string) ddl.StatementHandler {
	base := ddl.CreateIndex(TypeCreateIndex, kind)
	return func(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
		concurrently := c.CanConsume("CONCURRENTLY")
		n, err := base(c, parent)
		if n != nil && concurrently {
			n.SetProperty(PropConcurrently, true)
		}
		return n, err
	}
}

var dropIndexBase = ddl.Drop(TypeDropIndex)

func dropIndex(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	concurrently := c.CanConsume("CONCURRENTLY")
	n, err := dropIndexBase(c, parent)
	if n != nil && concurrently {
		n.SetProperty(PropConcurrently, true)
	}
	return n, err
}

// dropFunction accepts an argument list after the name, which
// distinguishes overloads.
func dropFunction(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	ifExists := c.CanConsume("IF", "EXISTS")
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	if c.Matches("(") {
		args, err := c.ParseParenthesized()
		if err != nil {
			return nil, err
		}
		name += "(" + args + ")"
	}
	n := parent.AddChild(name, TypeDropFunction)
	if ifExists {
		n.SetProperty(ddl.PropIfExists, true)
	}
	c.ParseDropBehavior(n)
	return n, nil
}

func createExtension(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	ifNotExists := c.CanConsume("IF", "NOT", "EXISTS")
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeCreateExtension)
	if ifNotExists {
		n.SetProperty(ddl.PropIfNotExists, true)
	}
	c.CanConsume("WITH")
	return n, c.ParseClauses(n,
		ddl.Valued("SCHEMA"), ddl.Valued("VERSION"), ddl.Valued("FROM"), ddl.Flag("CASCADE"))
}

// createType handles enum, range, composite and base types.
func createType(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeCreateType)
	switch {
	case c.CanConsume("AS", "ENUM"):
		n.SetProperty(PropTypeKind, "ENUM")
		return n, parseEnumLabels(c, n)
	case c.CanConsume("AS", "RANGE"):
		n.SetProperty(PropTypeKind, "RANGE")
		raw, err := c.ParseParenthesized()
		n.SetProperty(ddl.PropValue, raw)
		return n, err
	case c.CanConsume("AS"):
		n.SetProperty(PropTypeKind, "COMPOSITE")
		return n, c.ParseTableElements(n)
	case c.Matches("("):
		n.SetProperty(PropTypeKind, "BASE")
		raw, err := c.ParseParenthesized()
		n.SetProperty(ddl.PropValue, raw)
		return n, err
	default:
		// Shell type: CREATE TYPE name;
		n.SetProperty(PropTypeKind, "SHELL")
		return n, nil
	}
}

func parseEnumLabels(c *ddl.Context, n *ddl.Node) error {
	if err := c.Consume("("); err != nil {
		return err
	}
	if c.CanConsume(")") {
		return nil
	}
	for {
		t := c.Peek()
		if t.Kind != token.String {
			return c.Expected("an enum label")
		}
		c.Next()
		n.AddChild(t.Text, ddl.TypeEnumValue)
		if c.CanConsume(")") {
			return nil
		}
		if err := c.Consume(","); err != nil {
			return err
		}
	}
}

// functionClauses are the attributes accepted around a function body.
var functionClauses = []ddl.Clause{
	ddl.Valued("LANGUAGE"),
	ddl.Flag("IMMUTABLE"), ddl.Flag("STABLE"), ddl.Flag("VOLATILE"),
	ddl.Flag("STRICT"), ddl.Flag("CALLED ON NULL INPUT"), ddl.Flag("RETURNS NULL ON NULL INPUT"),
	ddl.Flag("SECURITY DEFINER"), ddl.Flag("SECURITY INVOKER"),
	ddl.Flag("EXTERNAL SECURITY DEFINER"), ddl.Flag("EXTERNAL SECURITY INVOKER"),
	ddl.Flag("LEAKPROOF"), ddl.Flag("NOT LEAKPROOF"), ddl.Flag("WINDOW"),
	ddl.Valued("PARALLEL"), ddl.Valued("COST"), ddl.Valued("ROWS"),
}

// createFunction parses a function signature, its return type and the
// attributes around the body. The body is usually dollar-quoted.
func createFunction(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeCreateFunction)
	if err := c.ParseParameters(n); err != nil {
		return n, err
	}
	if !c.Matches("RETURNS", "NULL") && c.CanConsume("RETURNS") {
		ret, err := parseReturnType(c)
		if err != nil {
			return n, err
		}
		n.SetProperty(ddl.PropReturnType, ret)
	}
	for !c.AtEnd() {
		if c.CanConsume("AS") {
			body := c.Peek()
			if body.Kind != token.String {
				return n, c.Expected("a function body")
			}
			c.Next()
			n.SetProperty(ddl.PropBody, body.Text)
			// AS 'obj_file', 'link_symbol'
			if c.CanConsume(",") {
				link := c.Peek()
				if link.Kind != token.String {
					return n, c.Expected("a link symbol")
				}
				c.Next()
				ddl.AddOption(n, "LINK SYMBOL", link.Text)
			}
			continue
		}
		before := c.Stream().Mark()
		if err := c.ParseClauses(n, functionClauses...); err != nil {
			return n, err
		}
		if c.Stream().Mark() == before {
			break
		}
	}
	if lang := n.FirstChildNamed("LANGUAGE"); lang != nil {
		n.SetProperty(ddl.PropLanguage, lang.PropertyString(ddl.PropValue))
	}
	return n, nil
}

func parseReturnType(c *ddl.Context) (string, error) {
	if c.CanConsume("TABLE") {
		cols, err := c.ParseParenthesized()
		return "TABLE (" + cols + ")", err
	}
	prefix := ""
	if c.CanConsume("SETOF") {
		prefix = "SETOF "
	}
	scratch := ddl.NewTree("return", ddl.TypeParameter)
	if err := c.ParseDataType(scratch); err != nil {
		return "", err
	}
	return prefix + scratch.PropertyString(ddl.PropDatatypeName), nil
}

func columnDefault(c *ddl.Context, col *ddl.Node) error {
	v, err := c.ParseDefaultValue()
	if err != nil {
		return err
	}
	// 'now'::timestamptz
	for c.CanConsume("::") {
		typ, err := c.ParseName()
		if err != nil {
			return err
		}
		v += "::" + typ
	}
	col.SetProperty(ddl.PropDefaultValue, v)
	return nil
}

func ownerTo(c *ddl.Context, table *ddl.Node) error {
	owner, err := c.ParseName()
	if err != nil {
		return err
	}
	table.SetProperty(ddl.PropOwner, owner)
	return nil
}

func renameTable(c *ddl.Context, table *ddl.Node) error {
	newName, err := c.ParseName()
	if err != nil {
		return err
	}
	table.SetProperty(ddl.PropNewName, newName)
	return nil
}

func renameColumn(c *ddl.Context, table *ddl.Node) error {
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	if err := c.Consume("TO"); err != nil {
		return err
	}
	newName, err := c.ParseName()
	if err != nil {
		return err
	}
	col := table.AddChild(name, TypeRenameColumn)
	col.SetProperty(ddl.PropNewName, newName)
	return nil
}

func inherits(c *ddl.Context, table *ddl.Node) error {
	parents, err := c.ParseNameList()
	if err != nil {
		return err
	}
	table.SetProperty(PropInherits, parents)
	return nil
}
