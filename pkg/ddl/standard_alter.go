package ddl

func alterTable(c *Context, parent *Node) (*Node, error) {
	ifExists := c.CanConsume("IF", "EXISTS")
	c.CanConsume("ONLY")
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	table := parent.AddChild(name, TypeAlterTable)
	if ifExists {
		table.SetProperty(PropIfExists, true)
	}
	return table, c.ParseAlterActions(table)
}

func addColumnOrConstraint(c *Context, table *Node) error {
	if c.AtTableConstraint() {
		_, err := c.ParseTableConstraint(table)
		return err
	}
	return addColumn(c, table)
}

func addColumn(c *Context, table *Node) error {
	c.CanConsume("IF", "NOT", "EXISTS")
	_, err := c.ParseColumnDefinition(table)
	return err
}

func dropColumn(c *Context, table *Node) error {
	ifExists := c.CanConsume("IF", "EXISTS")
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	col := table.AddChild(name, TypeDropColumn)
	if ifExists {
		col.SetProperty(PropIfExists, true)
	}
	c.ParseDropBehavior(col)
	return nil
}

func dropConstraint(c *Context, table *Node) error {
	ifExists := c.CanConsume("IF", "EXISTS")
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	con := table.AddChild(name, TypeDropConstraint)
	if ifExists {
		con.SetProperty(PropIfExists, true)
	}
	c.ParseDropBehavior(con)
	return nil
}

func alterColumn(c *Context, table *Node) error {
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	col := table.AddChild(name, TypeAlterColumn)
	switch {
	case c.CanConsume("SET", "DEFAULT"):
		v, err := c.ParseDefaultValue()
		if err != nil {
			return err
		}
		col.SetProperty(PropDefaultOperation, "SET")
		col.SetProperty(PropDefaultValue, v)
	case c.CanConsume("DROP", "DEFAULT"):
		col.SetProperty(PropDefaultOperation, "DROP")
	case c.CanConsume("SET", "NOT", "NULL"):
		col.SetProperty(PropNullable, "NOT NULL")
	case c.CanConsume("DROP", "NOT", "NULL"):
		col.SetProperty(PropNullable, "NULL")
	case c.CanConsume("SET", "DATA", "TYPE"), c.CanConsume("TYPE"):
		return c.ParseDataType(col)
	default:
		return c.Expected("SET DEFAULT or DROP DEFAULT")
	}
	return nil
}

// Drop returns a handler for "DROP <kind> [IF EXISTS] name [CASCADE|RESTRICT]".
func Drop(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		ifExists := c.CanConsume("IF", "EXISTS")
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if ifExists {
			n.SetProperty(PropIfExists, true)
		}
		c.ParseDropBehavior(n)
		return n, nil
	}
}
