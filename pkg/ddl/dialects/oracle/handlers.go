package oracle

import "github.com/leapstack-labs/reposql/pkg/ddl"

func public(h ddl.StatementHandler) ddl.StatementHandler {
	return mark(h, PropPublic)
}

func orReplace(h ddl.StatementHandler) ddl.StatementHandler {
	return mark(h, ddl.PropOrReplace)
}

// mark sets a boolean property on the node produced by h.
func mark(h ddl.StatementHandler, prop string) ddl.StatementHandler {
	return func(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
		n, err := h(c, parent)
		if n != nil {
			n.SetProperty(prop, true)
		}
		return n, err
	}
}

// unit parses a stored PL/SQL unit. Everything after the name up to a line
// holding only "/" is the unit's source.
func unit(typ ddl.Name) ddl.StatementHandler {
	return func(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if c.Matches("(") {
			params, err := c.ParseParenthesized()
			if err != nil {
				return n, err
			}
			n.SetProperty(PropParameters, params)
		}
		if body := c.CaptureBlock(); body != "" {
			n.SetProperty(ddl.PropBody, body)
		}
		return n, nil
	}
}

// addElements accepts Oracle's parenthesised form, ADD (a INT, b INT), as
// well as a single column or constraint.
func addElements(c *ddl.Context, table *ddl.Node) error {
	if c.Matches("(") {
		return c.ParseTableElements(table)
	}
	if c.AtTableConstraint() {
		_, err := c.ParseTableConstraint(table)
		return err
	}
	_, err := c.ParseColumnDefinition(table)
	return err
}

func modifyColumns(c *ddl.Context, table *ddl.Node) error {
	if !c.CanConsume("(") {
		return modifyColumn(c, table)
	}
	for {
		if err := modifyColumn(c, table); err != nil {
			return err
		}
		if c.CanConsume(")") {
			return nil
		}
		if err := c.Consume(","); err != nil {
			return err
		}
	}
}

func modifyColumn(c *ddl.Context, table *ddl.Node) error {
	col, err := c.ParseColumnDefinition(table)
	if col != nil {
		col.SetType(ddl.TypeAlterColumn)
	}
	return err
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
	col := table.AddChild(name, ddl.TypeAlterColumn)
	col.SetProperty(ddl.PropNewName, newName)
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
