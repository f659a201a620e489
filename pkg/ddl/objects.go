package ddl

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// CreateIndex returns a handler for
//
//	CREATE [kind] INDEX [IF NOT EXISTS] [name] ON [ONLY] table [USING method]
//	    (element, ...) [WHERE predicate]
//
// kind is recorded as the index type when set, e.g. "UNIQUE" or "BITMAP".
// Index elements are kept as written, so expressions and ordering survive.
func CreateIndex(typ Name, kind string) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		ifNotExists := c.CanConsume("IF", "NOT", "EXISTS")
		name := ""
		if !c.Matches("ON") {
			var err error
			if name, err = c.ParseName(); err != nil {
				return nil, err
			}
		}
		n := parent.AddChild(name, typ)
		if kind != "" {
			n.SetProperty(PropIndexType, kind)
		}
		if ifNotExists {
			n.SetProperty(PropIfNotExists, true)
		}
		if err := c.Consume("ON"); err != nil {
			return n, err
		}
		c.CanConsume("ONLY")
		table, err := c.ParseName()
		if err != nil {
			return n, err
		}
		n.SetProperty(PropTableName, table)
		if name == "" {
			n.Rename(table)
		}
		if c.CanConsume("USING") {
			method, err := c.ParseName()
			if err != nil {
				return n, err
			}
			n.SetProperty(PropIndexMethod, method)
		}
		if err := c.parseIndexElements(n); err != nil {
			return n, err
		}
		if c.CanConsume("WHERE") {
			n.SetProperty(PropWhereClause, c.CaptureUntilEnd())
		}
		return n, nil
	}
}

func (c *Context) parseIndexElements(n *Node) error {
	if err := c.Consume("("); err != nil {
		return err
	}
	for {
		elem := c.CaptureUntil(func() bool { return c.Matches(",") })
		if elem == "" {
			return c.Expected("an index element")
		}
		n.AddChild(elem, TypeColumnReference)
		if c.CanConsume(")") {
			return nil
		}
		if err := c.Consume(","); err != nil {
			return err
		}
	}
}

// SequenceClauses are the options accepted after CREATE SEQUENCE name.
var SequenceClauses = []Clause{
	Valued("AS"),
	Valued("INCREMENT BY"), Valued("INCREMENT"),
	Valued("START WITH"), Valued("START"),
	Valued("RESTART WITH"), Flag("RESTART"),
	Valued("MINVALUE"), Flag("NO MINVALUE"), Flag("NOMINVALUE"),
	Valued("MAXVALUE"), Flag("NO MAXVALUE"), Flag("NOMAXVALUE"),
	Valued("CACHE"), Flag("NOCACHE"),
	Flag("CYCLE"), Flag("NO CYCLE"), Flag("NOCYCLE"),
	Flag("ORDER"), Flag("NOORDER"),
	Valued("OWNED BY"),
}

// CreateSequence returns a handler for CREATE SEQUENCE [IF NOT EXISTS] name
// followed by sequence options.
func CreateSequence(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		ifNotExists := c.CanConsume("IF", "NOT", "EXISTS")
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if ifNotExists {
			n.SetProperty(PropIfNotExists, true)
		}
		return n, c.ParseClauses(n, SequenceClauses...)
	}
}

// commentTargets are the object kinds accepted by COMMENT ON.
var commentTargets = [][]string{
	{"MATERIALIZED", "VIEW"}, {"FOREIGN", "TABLE"}, {"INDEXTYPE"}, {"OPERATOR"},
	{"TABLE"}, {"COLUMN"}, {"VIEW"}, {"INDEX"}, {"SEQUENCE"}, {"SCHEMA"},
	{"FUNCTION"}, {"PROCEDURE"}, {"TYPE"}, {"EXTENSION"}, {"DOMAIN"},
	{"CONSTRAINT"}, {"TRIGGER"}, {"DATABASE"}, {"ROLE"}, {"MINING", "MODEL"},
}

// CommentOn returns a handler for COMMENT ON kind name IS 'text'. A routine
// signature after the name is kept with the name.
func CommentOn(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		kind := ""
		for _, k := range commentTargets {
			if c.CanConsume(k...) {
				kind = strings.Join(k, " ")
				break
			}
		}
		if kind == "" {
			return nil, c.Expected("an object kind")
		}
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
		// CONSTRAINT c ON table, TRIGGER t ON table
		if c.CanConsume("ON") {
			table, err := c.ParseName()
			if err != nil {
				return nil, err
			}
			name = table + "." + name
		}
		n := parent.AddChild(name, typ)
		n.SetProperty(PropObjectType, kind)
		if err := c.Consume("IS"); err != nil {
			return n, err
		}
		switch t := c.Peek(); {
		case t.Kind == token.String:
			c.Next()
			n.SetProperty(PropComment, t.Text)
		case c.CanConsume("NULL"):
			n.SetProperty(PropComment, "")
		default:
			return n, c.Expected("a comment string")
		}
		return n, nil
	}
}

// Rename returns a handler for "<kind> old TO new" statements such as
// RENAME TABLE a TO b.
func Rename(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if err := c.Consume("TO"); err != nil {
			return n, err
		}
		newName, err := c.ParseName()
		if err != nil {
			return n, err
		}
		n.SetProperty(PropNewName, newName)
		return n, nil
	}
}

// CreateSynonym returns a handler for SYNONYM name FOR target. The
// statement's leading words have already been consumed.
func CreateSynonym(typ Name) StatementHandler {
	return func(c *Context, parent *Node) (*Node, error) {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		n := parent.AddChild(name, typ)
		if err := c.Consume("FOR"); err != nil {
			return n, err
		}
		target, err := c.ParseName()
		if err != nil {
			return n, err
		}
		n.SetProperty(PropTarget, target)
		return n, nil
	}
}

// ParseParameters parses a parenthesised routine parameter list into
// parameter children of n:
//
//	( [IN|OUT|INOUT|VARIADIC] [name] type [DEFAULT value | = value], ... )
//
// A parameter whose first word is a known data type is taken to be
// unnamed.
func (c *Context) ParseParameters(n *Node) error {
	if err := c.Consume("("); err != nil {
		return err
	}
	if c.CanConsume(")") {
		return nil
	}
	for i := 1; ; i++ {
		mode := ""
		for _, m := range []string{"INOUT", "IN", "OUT", "VARIADIC"} {
			if c.CanConsume(m) {
				mode = m
				break
			}
		}
		name := ""
		if !c.AtDataType() {
			var err error
			if name, err = c.ParseName(); err != nil {
				return err
			}
		}
		if name == "" {
			name = "$" + strconv.Itoa(i)
		}
		p := n.AddChild(name, TypeParameter)
		if mode != "" {
			p.SetProperty(PropParameterMode, mode)
		}
		if err := c.ParseDataType(p); err != nil {
			return err
		}
		if c.CanConsume("DEFAULT") || c.CanConsume("=") {
			v, err := c.ParseDefaultValue()
			if err != nil {
				return err
			}
			p.SetProperty(PropDefaultValue, v)
		}
		if c.CanConsume(")") {
			return nil
		}
		if err := c.Consume(","); err != nil {
			return err
		}
	}
}
