package ddl

import (
	"strings"
)

// CreateTable returns the handler for CREATE [temporary] TABLE. temporary is
// "GLOBAL", "LOCAL" or empty.
func CreateTable(temporary string) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		ifNotExists := c.CanConsume("IF", "NOT", "EXISTS")
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		table := parent.AddChild(name, TypeCreateTable)
		if temporary != "" {
			table.SetProperty(PropTemporary, temporary)
		}
		if ifNotExists {
			table.SetProperty(PropIfNotExists, true)
		}
		if c.Matches("(") {
			if err := c.ParseTableElements(table); err != nil {
				return table, err
			}
		}
		if err := c.ParseTableOptions(table); err != nil {
			return table, err
		}
		if c.CanConsume("AS") {
			table.SetProperty(PropQueryExpression, c.CaptureUntilEnd())
		}
		return table, nil
	}
}

func onCommit(c *Context, table *Node) error {
	for _, action := range []string{"DELETE", "PRESERVE", "DROP"} {
		if c.CanConsume(action) {
			value := action
			if c.CanConsume("ROWS") {
				value += " ROWS"
			}
			AddOption(table, "ON COMMIT", value)
			return nil
		}
	}
	return c.Expected("DELETE ROWS or PRESERVE ROWS")
}

// CreateView returns the handler for CREATE [OR REPLACE] VIEW.
func CreateView(orReplace bool) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		view := parent.AddChild(name, TypeCreateView)
		if orReplace {
			view.SetProperty(PropOrReplace, true)
		}
		if c.Matches("(") {
			cols, err := c.ParseNameList()
			if err != nil {
				return view, err
			}
			for _, col := range cols {
				view.AddChild(col, TypeColumnReference)
			}
		}
		if err := c.Consume("AS"); err != nil {
			return view, err
		}
		atCheckOption := func() bool {
			return c.Matches("WITH", "CHECK", "OPTION") ||
				c.Matches("WITH", "CASCADED", "CHECK", "OPTION") ||
				c.Matches("WITH", "LOCAL", "CHECK", "OPTION") ||
				c.AtEnd()
		}
		query := c.CaptureUntil(atCheckOption)
		if query == "" {
			return view, c.Expected("a query expression")
		}
		view.SetProperty(PropQueryExpression, query)
		switch {
		case c.CanConsume("WITH", "CHECK", "OPTION"):
			view.SetProperty(PropCheckOption, "CHECK OPTION")
		case c.CanConsume("WITH", "CASCADED", "CHECK", "OPTION"):
			view.SetProperty(PropCheckOption, "CASCADED CHECK OPTION")
		case c.CanConsume("WITH", "LOCAL", "CHECK", "OPTION"):
			view.SetProperty(PropCheckOption, "LOCAL CHECK OPTION")
		}
		return view, nil
	}
}

// schemaElements are the statements that may appear inside CREATE SCHEMA.
var schemaElements = [][]string{
	{"CREATE", "TABLE"},
	{"CREATE", "GLOBAL", "TEMPORARY", "TABLE"},
	{"CREATE", "LOCAL", "TEMPORARY", "TABLE"},
	{"CREATE", "VIEW"},
	{"CREATE", "DOMAIN"},
	{"CREATE", "ASSERTION"},
	{"CREATE", "CHARACTER", "SET"},
	{"CREATE", "COLLATION"},
	{"CREATE", "TRANSLATION"},
	{"GRANT"},
}

func createSchema(c *Context, parent *Node) (*Node, error) {
	name := ""
	if !c.Matches("AUTHORIZATION") {
		var err error
		if name, err = c.ParseName(); err != nil {
			return nil, err
		}
	}
	schema := parent.AddChild(name, TypeCreateSchema)
	if c.CanConsume("AUTHORIZATION") {
		owner, err := c.ParseName()
		if err != nil {
			return schema, err
		}
		schema.SetProperty(PropAuthorization, owner)
		if name == "" {
			schema.Rename(owner)
		}
	}
	if c.CanConsume("DEFAULT", "CHARACTER", "SET") {
		cs, err := c.ParseName()
		if err != nil {
			return schema, err
		}
		AddOption(schema, "DEFAULT CHARACTER SET", cs)
	}
	for {
		nested := false
		for _, phrase := range schemaElements {
			if c.Matches(phrase...) {
				nested = true
				break
			}
		}
		if !nested {
			return schema, nil
		}
		if err := c.ParseNestedStatement(schema); err != nil {
			return schema, err
		}
	}
}

func createDomain(c *Context, parent *Node) (*Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	domain := parent.AddChild(name, TypeCreateDomain)
	c.CanConsume("AS")
	if err := c.ParseDataType(domain); err != nil {
		return domain, err
	}
	return domain, c.ParseColumnOptions(domain)
}

func createAssertion(c *Context, parent *Node) (*Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	assertion := parent.AddChild(name, TypeCreateAssertion)
	if err := c.Consume("CHECK"); err != nil {
		return assertion, err
	}
	cond, err := c.ParseParenthesized()
	if err != nil {
		return assertion, err
	}
	assertion.SetProperty(PropCheckCondition, cond)
	c.parseConstraintAttributes(assertion)
	return assertion, nil
}

// CreateObject returns a handler for statements of the form
// "CREATE <kind> name clauses..." whose clauses are kept verbatim.
func CreateObject(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if rest := c.CaptureUntilEnd(); rest != "" {
			n.SetProperty(PropValue, rest)
		}
		return n, nil
	}
}

// Column options

func setNullable(value string) OptionHandler {
	return func(_ *Context, col *Node) error {
		col.SetProperty(PropNullable, value)
		return nil
	}
}

func columnDefault(c *Context, col *Node) error {
	v, err := c.ParseDefaultValue()
	if err != nil {
		return err
	}
	col.SetProperty(PropDefaultValue, v)
	return nil
}

func columnCollate(c *Context, col *Node) error {
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	col.SetProperty(PropCollation, name)
	return nil
}

func namedColumnConstraint(c *Context, col *Node) error {
	name, err := c.ParseName()
	if err != nil {
		return err
	}
	switch {
	case c.CanConsume("NOT", "NULL"):
		col.SetProperty(PropNullable, "NOT NULL")
		return nil
	case c.CanConsume("PRIMARY", "KEY"):
		return inlineConstraint(c, col, name, ConstraintPrimaryKey)
	case c.CanConsume("UNIQUE"):
		return inlineConstraint(c, col, name, ConstraintUnique)
	case c.CanConsume("REFERENCES"):
		return inlineConstraint(c, col, name, ConstraintForeignKey)
	case c.CanConsume("CHECK"):
		return inlineConstraint(c, col, name, ConstraintCheck)
	default:
		return c.Expected("a column constraint")
	}
}

func columnConstraint(ctype string) OptionHandler {
	return func(c *Context, col *Node) error {
		return inlineConstraint(c, col, "", ctype)
	}
}

// inlineConstraint records a constraint declared on a column. The
// constraint's keywords have already been consumed.
func inlineConstraint(c *Context, col *Node, name, ctype string) error {
	if name == "" {
		name = strings.ReplaceAll(strings.ToLower(ctype), " ", "_")
	}
	con := col.AddChild(name, TypeTableConstraint)
	con.SetProperty(PropConstraintType, ctype)
	con.AddChild(col.Name(), TypeColumnReference)
	switch ctype {
	case ConstraintForeignKey:
		if err := c.ParseReferences(con); err != nil {
			return err
		}
	case ConstraintCheck:
		cond, err := c.ParseParenthesized()
		if err != nil {
			return err
		}
		con.SetProperty(PropCheckCondition, cond)
	}
	c.parseConstraintAttributes(con)
	return nil
}
