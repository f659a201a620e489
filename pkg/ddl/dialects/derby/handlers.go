package derby

import (
	"strings"

	"github.com/leapstack-labs/reposql/pkg/ddl"
)

// routineClauses are the routine elements that follow a function or
// procedure signature.
var routineClauses = []ddl.Clause{
	ddl.Valued("LANGUAGE"),
	ddl.Valued("PARAMETER STYLE"),
	ddl.Valued("EXTERNAL NAME"),
	ddl.Valued("DYNAMIC RESULT SETS"),
	ddl.Flag("DETERMINISTIC"), ddl.Flag("NOT DETERMINISTIC"),
	ddl.Flag("NO SQL"), ddl.Flag("CONTAINS SQL"), ddl.Flag("READS SQL DATA"), ddl.Flag("MODIFIES SQL DATA"),
	ddl.Flag("RETURNS NULL ON NULL INPUT"), ddl.Flag("CALLED ON NULL INPUT"),
}

func routine(typ ddl.Name) ddl.StatementHandler {
	return func(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if err := c.ParseParameters(n); err != nil {
			return n, err
		}
		if typ == TypeCreateFunction && !c.Matches("RETURNS", "NULL") && c.CanConsume("RETURNS") {
			if c.Matches("TABLE") {
				c.Next()
				cols, err := c.ParseParenthesized()
				if err != nil {
					return n, err
				}
				n.SetProperty(ddl.PropReturnType, "TABLE ("+cols+")")
			} else {
				ret := ddl.NewTree("return", ddl.TypeParameter)
				if err := c.ParseDataType(ret); err != nil {
					return n, err
				}
				n.SetProperty(ddl.PropReturnType, ret.PropertyString(ddl.PropDatatypeName))
			}
		}
		if err := c.ParseClauses(n, routineClauses...); err != nil {
			return n, err
		}
		if lang := n.FirstChildNamed("LANGUAGE"); lang != nil {
			n.SetProperty(ddl.PropLanguage, lang.PropertyString(ddl.PropValue))
		}
		return n, nil
	}
}

// createTrigger parses
//
//	CREATE TRIGGER name {NO CASCADE BEFORE | AFTER} {INSERT | DELETE | UPDATE [OF cols]}
//	    ON table [REFERENCING ...] FOR EACH {ROW | STATEMENT} [MODE DB2SQL] statement
func createTrigger(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeCreateTrigger)
	switch {
	case c.CanConsume("NO", "CASCADE", "BEFORE"), c.CanConsume("BEFORE"):
		n.SetProperty(PropTriggerTime, "BEFORE")
	case c.CanConsume("AFTER"):
		n.SetProperty(PropTriggerTime, "AFTER")
	default:
		return n, c.Expected("BEFORE or AFTER")
	}
	switch {
	case c.CanConsume("INSERT"):
		n.SetProperty(PropTriggerEvent, "INSERT")
	case c.CanConsume("DELETE"):
		n.SetProperty(PropTriggerEvent, "DELETE")
	case c.CanConsume("UPDATE"):
		n.SetProperty(PropTriggerEvent, "UPDATE")
		if c.CanConsume("OF") {
			for {
				col, err := c.ParseName()
				if err != nil {
					return n, err
				}
				n.AddChild(col, ddl.TypeColumnReference)
				if !c.CanConsume(",") {
					break
				}
			}
		}
	default:
		return n, c.Expected("INSERT, DELETE or UPDATE")
	}
	if err := c.Consume("ON"); err != nil {
		return n, err
	}
	table, err := c.ParseName()
	if err != nil {
		return n, err
	}
	n.SetProperty(ddl.PropTableName, table)
	if c.CanConsume("REFERENCING") {
		refs := c.CaptureUntil(func() bool { return c.Matches("FOR", "EACH") })
		n.SetProperty(PropReferencing, refs)
	}
	if c.CanConsume("FOR", "EACH") {
		switch {
		case c.CanConsume("ROW"):
			n.SetProperty(PropTriggerScope, "ROW")
		case c.CanConsume("STATEMENT"):
			n.SetProperty(PropTriggerScope, "STATEMENT")
		default:
			return n, c.Expected("ROW or STATEMENT")
		}
	}
	c.CanConsume("MODE", "DB2SQL")
	// The triggered statement may itself start a statement, so only the
	// terminator ends it.
	action := c.CaptureUntil(func() bool { return false })
	if action == "" {
		return n, c.Expected("a triggered statement")
	}
	n.SetProperty(ddl.PropBody, action)
	return n, nil
}

var createGlobalTemp = ddl.CreateTable("GLOBAL")

func declareTempTable(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	n, err := createGlobalTemp(c, parent)
	if n != nil {
		n.SetType(TypeDeclareGlobalTempTable)
	}
	return n, err
}

func lockTable(c *ddl.Context, parent *ddl.Node) (*ddl.Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	n := parent.AddChild(name, TypeLockTable)
	if err := c.Consume("IN"); err != nil {
		return n, err
	}
	switch {
	case c.CanConsume("SHARE"):
		n.SetProperty(PropLockMode, "SHARE")
	case c.CanConsume("EXCLUSIVE"):
		n.SetProperty(PropLockMode, "EXCLUSIVE")
	default:
		return n, c.Expected("SHARE or EXCLUSIVE")
	}
	return n, c.Consume("MODE")
}

func identity(kind string) ddl.OptionHandler {
	return func(c *ddl.Context, col *ddl.Node) error {
		col.SetProperty(PropIdentity, kind)
		if c.Matches("(") {
			opts, err := c.ParseParenthesized()
			if err != nil {
				return err
			}
			col.SetProperty(PropIdentityOptions, strings.Join(strings.Fields(opts), " "))
		}
		return nil
	}
}

func generatedColumn(c *ddl.Context, col *ddl.Node) error {
	expr, err := c.ParseParenthesized()
	if err != nil {
		return err
	}
	col.SetProperty(PropGenerated, expr)
	return nil
}

func withDefault(c *ddl.Context, col *ddl.Node) error {
	v, err := c.ParseDefaultValue()
	if err != nil {
		return err
	}
	col.SetProperty(ddl.PropDefaultValue, v)
	return nil
}
