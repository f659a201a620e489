package ddl

import (
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// Context gives statement and option handlers access to the stream and to
// the grammar's shared sub-parsers.
type Context struct {
	s    *Stream
	g    *Grammar
	root *Node
}

// Stream returns the underlying token stream.
func (c *Context) Stream() *Stream { return c.s }

// Grammar returns the grammar being parsed.
func (c *Context) Grammar() *Grammar { return c.g }

// Token access

func (c *Context) Peek() token.Token            { return c.s.Peek() }
func (c *Context) PeekAt(n int) token.Token     { return c.s.PeekAt(n) }
func (c *Context) Next() token.Token            { return c.s.Next() }
func (c *Context) Matches(words ...string) bool { return c.s.Matches(words...) }
func (c *Context) MatchesAny(words ...string) bool {
	return c.s.MatchesAny(words...)
}
func (c *Context) CanConsume(words ...string) bool { return c.s.CanConsume(words...) }
func (c *Context) Consume(words ...string) error   { return c.s.Consume(words...) }

// Expected returns an error describing the next token as unexpected.
func (c *Context) Expected(what string) error { return c.s.unexpected(what) }

// AtEnd reports whether the current statement has ended: the next token is
// a terminator, the end of input, or the start of another statement.
func (c *Context) AtEnd() bool {
	t := c.s.Peek()
	return t.Kind == token.EOF || t.Kind == token.Terminator || c.s.AtStatementStart()
}

// Problem records a problem node on the parse root.
func (c *Context) Problem(level string, err *ParseError) *Node {
	p := c.root.AddChild("problem", TypeProblem)
	p.SetProperty(PropProblemLevel, level)
	p.SetProperty(PropMessage, err.Message)
	p.SetProperty(PropProblemLine, err.Pos.Line)
	p.SetProperty(PropProblemColumn, err.Pos.Column)
	return p
}

// parseStatement parses one statement into parent. Top-level statements
// also consume their terminator.
func (c *Context) parseStatement(parent *Node, topLevel bool) error {
	start := c.s.Peek()
	rule, ok := c.g.matchStatement(c.s)
	if !ok {
		c.unknownStatement(parent, start)
		if topLevel {
			c.s.CanConsume(";")
		}
		return nil
	}
	c.s.CanConsume(rule.phrase...)
	n, err := rule.handler(c, parent)
	if n != nil {
		stampStatement(c.s, n, start)
	}
	if err != nil {
		return err
	}
	if n != nil && !c.AtEnd() {
		// Trailing clauses this grammar does not model are kept verbatim.
		from := c.s.Peek()
		raw := c.captureUntil(c.AtEnd)
		opt := n.AddChild("statementOption", TypeStatementOption)
		opt.SetProperty(PropValue, raw)
		opt.SetProperty(PropStartLine, from.Pos.Line)
		stampStatement(c.s, n, start)
	}
	if topLevel {
		c.s.CanConsume(";")
	}
	return nil
}

func stampStatement(s *Stream, n *Node, start token.Token) {
	end := s.Previous().End.Offset
	n.SetProperty(PropExpression, strings.TrimSpace(s.Slice(start.Pos.Offset, end)))
	n.SetProperty(PropStartLine, start.Pos.Line)
	n.SetProperty(PropStartColumn, start.Pos.Column)
	n.SetProperty(PropStartCharIndex, start.Pos.Offset)
}

// unknownStatement records everything up to the next statement as an
// unknown statement with a warning.
func (c *Context) unknownStatement(parent *Node, start token.Token) {
	c.s.Next()
	c.captureUntil(c.AtEnd)
	n := parent.AddChild("unknownStatement", TypeUnknownStatement)
	stampStatement(c.s, n, start)
	c.Problem(LevelWarning, newParseError(start.Pos, "unrecognized statement starting with %s", start))
}

// resync skips past a failed statement that began at mark. It reports
// false when no later statement exists to resume at.
func (c *Context) resync(mark int) bool {
	if c.s.Mark() == mark {
		c.s.Next()
	}
	for {
		t := c.s.Peek()
		switch {
		case t.Kind == token.EOF:
			return false
		case t.Kind == token.Terminator:
			c.s.Next()
			return true
		case c.s.AtStatementStart():
			return true
		}
		c.s.Next()
	}
}

// ParseNestedStatement parses a statement embedded in another one, such
// as a table definition inside CREATE SCHEMA.
func (c *Context) ParseNestedStatement(parent *Node) error {
	return c.parseStatement(parent, false)
}

// ParseName parses a possibly qualified name: a, a.b or "A"."b".
func (c *Context) ParseName() (string, error) {
	var parts []string
	for {
		t := c.s.Peek()
		if !t.Kind.IsWord() && t.Kind != token.QuotedIdentifier {
			return "", c.Expected("a name")
		}
		c.s.Next()
		parts = append(parts, t.Text)
		if !c.s.Matches(".") || !isNameToken(c.s.PeekAt(1)) {
			return strings.Join(parts, "."), nil
		}
		c.s.Next()
	}
}

func isNameToken(t token.Token) bool {
	return t.Kind.IsWord() || t.Kind == token.QuotedIdentifier
}

// ParseNameList parses a parenthesised, comma-separated list of names.
func (c *Context) ParseNameList() ([]string, error) {
	if err := c.Consume("("); err != nil {
		return nil, err
	}
	var names []string
	for {
		name, err := c.ParseName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if c.CanConsume(")") {
			return names, nil
		}
		if err := c.Consume(","); err != nil {
			return nil, err
		}
	}
}

// ParseIfExists consumes IF EXISTS and records it on n.
func (c *Context) ParseIfExists(n *Node) {
	if c.CanConsume("IF", "EXISTS") {
		n.SetProperty(PropIfExists, true)
	}
}

// ParseIfNotExists consumes IF NOT EXISTS and records it on n.
func (c *Context) ParseIfNotExists(n *Node) {
	if c.CanConsume("IF", "NOT", "EXISTS") {
		n.SetProperty(PropIfNotExists, true)
	}
}

// ParseDropBehavior consumes CASCADE or RESTRICT and records it on n.
func (c *Context) ParseDropBehavior(n *Node) {
	switch {
	case c.CanConsume("CASCADE"):
		n.SetProperty(PropDropBehavior, "CASCADE")
	case c.CanConsume("RESTRICT"):
		n.SetProperty(PropDropBehavior, "RESTRICT")
	}
}

// ParseNumber consumes a number, allowing a leading sign.
func (c *Context) ParseNumber() (string, error) {
	sign := ""
	if c.Matches("-") || c.Matches("+") {
		if c.PeekAt(1).Kind != token.Number {
			return "", c.Expected("a number")
		}
		sign = c.Next().Text
	}
	t := c.s.Peek()
	if t.Kind != token.Number {
		return "", c.Expected("a number")
	}
	c.s.Next()
	if sign == "-" {
		return "-" + t.Text, nil
	}
	return t.Text, nil
}

// ParseParenthesized consumes a balanced ( ... ) group and returns the raw
// text between the parentheses.
func (c *Context) ParseParenthesized() (string, error) {
	open := c.s.Peek()
	if err := c.Consume("("); err != nil {
		return "", err
	}
	depth := 1
	for {
		t := c.s.Peek()
		switch {
		case t.Kind == token.EOF:
			return "", newParseError(open.Pos, "unbalanced parenthesis")
		case t.Kind == token.Symbol && t.Text == "(":
			depth++
		case t.Kind == token.Symbol && t.Text == ")":
			depth--
			if depth == 0 {
				c.s.Next()
				return strings.TrimSpace(c.s.Slice(open.End.Offset, t.Pos.Offset)), nil
			}
		}
		c.s.Next()
	}
}

// CaptureUntilEnd consumes tokens up to the end of the statement and
// returns their raw text. Parenthesised groups are captured whole.
func (c *Context) CaptureUntilEnd() string {
	return c.captureUntil(c.AtEnd)
}

// CaptureUntil consumes tokens until stop reports true outside parentheses
// or the input ends, and returns their raw text. Terminators are never
// consumed outside parentheses.
func (c *Context) CaptureUntil(stop func() bool) string {
	return c.captureUntil(stop)
}

func (c *Context) captureUntil(stop func() bool) string {
	first := c.s.Peek()
	end := first.Pos.Offset
	depth := 0
	for {
		t := c.s.Peek()
		if t.Kind == token.EOF {
			break
		}
		if depth == 0 && (t.Kind == token.Terminator || stop()) {
			break
		}
		if t.Kind == token.Symbol {
			switch t.Text {
			case "(":
				depth++
			case ")":
				if depth == 0 {
					return strings.TrimSpace(c.s.Slice(first.Pos.Offset, end))
				}
				depth--
			}
		}
		c.s.Next()
		end = t.End.Offset
	}
	return strings.TrimSpace(c.s.Slice(first.Pos.Offset, end))
}

// CaptureBlock consumes everything up to a line holding only "/" and
// returns the raw text before it. The "/" is consumed. Without such a line
// the rest of the input is captured.
func (c *Context) CaptureBlock() string {
	first := c.s.Peek()
	end := first.Pos.Offset
	for {
		t := c.s.Peek()
		if t.Kind == token.EOF {
			break
		}
		if isBlockTerminator(t, c.s.PeekAt(1)) {
			c.s.Next()
			break
		}
		c.s.Next()
		end = t.End.Offset
	}
	return strings.TrimSpace(c.s.Slice(first.Pos.Offset, end))
}

// isBlockTerminator reports whether t is a "/" alone on its line.
func isBlockTerminator(t, next token.Token) bool {
	if t.Kind != token.Symbol || t.Text != "/" || t.Pos.Column != 1 {
		return false
	}
	return next.Kind == token.EOF || next.Pos.Line > t.Pos.Line
}

// ParseDataType parses a data type and records it on n.
func (c *Context) ParseDataType(n *Node) error {
	start := c.s.Peek()
	var name string
	kind := TypeLength
	if d, ok := c.g.matchDataType(c.s); ok {
		c.s.CanConsume(d.phrase...)
		name, kind = strings.ToUpper(strings.Join(d.phrase, " ")), d.kind
	} else {
		if !start.Kind.IsWord() && start.Kind != token.QuotedIdentifier {
			return c.Expected("a data type")
		}
		var err error
		if name, err = c.ParseName(); err != nil {
			return err
		}
	}

	if c.Matches("(") {
		if err := c.parseTypeArguments(n, kind); err != nil {
			return err
		}
	}
	for _, suffix := range c.g.typeSuffixes {
		if c.CanConsume(suffix...) {
			name += " " + strings.Join(suffix, " ")
		}
	}
	for c.Matches("[") && c.PeekAt(1).Text == "]" {
		c.s.Next()
		c.s.Next()
		name += "[]"
	}
	n.SetProperty(PropDatatypeName, name)
	return nil
}

func (c *Context) parseTypeArguments(n *Node, kind TypeKind) error {
	c.s.Next() // (
	first := c.s.Peek()
	switch {
	case first.Kind == token.Number:
		c.s.Next()
	case first.Kind.IsWord() && strings.EqualFold(first.Text, "MAX"), first.Kind == token.Symbol && first.Text == "*":
		c.s.Next()
	default:
		return c.Expected("a data type length")
	}
	size := first.Text
	// CLOB(2M), BLOB(64K)
	for _, unit := range []string{"K", "M", "G"} {
		if c.CanConsume(unit) {
			size += unit
			break
		}
	}
	// VARCHAR2(10 BYTE), VARCHAR2(10 CHAR)
	c.CanConsume("BYTE")
	c.CanConsume("CHAR")

	switch kind {
	case TypeNumeric:
		n.SetProperty(PropDatatypePrec, size)
	default:
		n.SetProperty(PropDatatypeLength, size)
	}
	if c.CanConsume(",") {
		scale, err := c.ParseNumber()
		if err != nil {
			return err
		}
		n.SetProperty(PropDatatypeScale, scale)
	}
	return c.Consume(")")
}

// AtDataType reports whether a data type known to the grammar starts at
// the cursor.
func (c *Context) AtDataType() bool {
	_, ok := c.g.matchDataType(c.s)
	return ok
}

// ParseDefaultValue parses a DEFAULT value: a literal, NULL, a niladic
// function such as CURRENT_DATE, a function call or a parenthesised
// expression. The raw text is returned.
func (c *Context) ParseDefaultValue() (string, error) {
	t := c.s.Peek()
	switch {
	case t.Kind == token.Symbol && t.Text == "(":
		inner, err := c.ParseParenthesized()
		return "(" + inner + ")", err
	case t.Kind == token.Symbol && (t.Text == "-" || t.Text == "+"):
		return c.ParseNumber()
	case t.Kind == token.Number:
		c.s.Next()
		return t.Text, nil
	case t.Kind == token.String:
		c.s.Next()
		return "'" + strings.ReplaceAll(t.Text, "'", "''") + "'", nil
	case t.Kind.IsWord(), t.Kind == token.QuotedIdentifier:
		name, err := c.ParseName()
		if err != nil {
			return "", err
		}
		if c.Matches("(") {
			args, err := c.ParseParenthesized()
			if err != nil {
				return "", err
			}
			return name + "(" + args + ")", nil
		}
		// DATE '2001-01-01', INTERVAL '1' DAY
		if lit := c.s.Peek(); lit.Kind == token.String {
			c.s.Next()
			return name + " '" + lit.Text + "'", nil
		}
		return name, nil
	default:
		return "", c.Expected("a default value")
	}
}

// AtColumnEnd reports whether a column definition has ended.
func (c *Context) AtColumnEnd() bool {
	return c.Matches(",") || c.Matches(")") || c.AtEnd()
}

// ParseColumnDefinition parses "name type options..." into a new column
// node under parent.
func (c *Context) ParseColumnDefinition(parent *Node) (*Node, error) {
	name, err := c.ParseName()
	if err != nil {
		return nil, err
	}
	col := parent.AddChild(name, TypeColumnDefinition)
	if _, isOption := matchOption(c.s, c.g.columnOptions); !isOption && !c.AtColumnEnd() {
		if err := c.ParseDataType(col); err != nil {
			return col, err
		}
	}
	return col, c.ParseColumnOptions(col)
}

// ParseColumnOptions parses column clauses until the definition ends.
func (c *Context) ParseColumnOptions(col *Node) error {
	for !c.AtColumnEnd() {
		rule, ok := matchOption(c.s, c.g.columnOptions)
		if !ok {
			return c.Expected("a column option")
		}
		c.s.CanConsume(rule.phrase...)
		if err := rule.handler(c, col); err != nil {
			return err
		}
	}
	return nil
}

// AtTableConstraint reports whether a table constraint starts at the cursor.
func (c *Context) AtTableConstraint() bool {
	return c.Matches("CONSTRAINT") || c.Matches("PRIMARY", "KEY") || c.Matches("UNIQUE") ||
		c.Matches("FOREIGN", "KEY") || c.Matches("CHECK")
}

// ParseTableElements parses "( element, ... )" where each element is a
// column definition or a table constraint.
func (c *Context) ParseTableElements(table *Node) error {
	if err := c.Consume("("); err != nil {
		return err
	}
	for {
		var err error
		if c.AtTableConstraint() {
			_, err = c.ParseTableConstraint(table)
		} else {
			_, err = c.ParseColumnDefinition(table)
		}
		if err != nil {
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

// ParseTableConstraint parses [CONSTRAINT name] followed by a PRIMARY KEY,
// UNIQUE, FOREIGN KEY or CHECK constraint.
func (c *Context) ParseTableConstraint(parent *Node) (*Node, error) {
	name := ""
	if c.CanConsume("CONSTRAINT") {
		var err error
		if name, err = c.ParseName(); err != nil {
			return nil, err
		}
	}
	var ctype string
	switch {
	case c.CanConsume("PRIMARY", "KEY"):
		ctype = ConstraintPrimaryKey
	case c.CanConsume("UNIQUE"):
		ctype = ConstraintUnique
	case c.CanConsume("FOREIGN", "KEY"):
		ctype = ConstraintForeignKey
	case c.CanConsume("CHECK"):
		ctype = ConstraintCheck
	default:
		return nil, c.Expected("PRIMARY KEY, UNIQUE, FOREIGN KEY or CHECK")
	}
	if name == "" {
		name = strings.ReplaceAll(strings.ToLower(ctype), " ", "_")
	}
	con := parent.AddChild(name, TypeTableConstraint)
	con.SetProperty(PropConstraintType, ctype)

	if ctype == ConstraintCheck {
		cond, err := c.ParseParenthesized()
		if err != nil {
			return con, err
		}
		con.SetProperty(PropCheckCondition, cond)
		c.parseConstraintAttributes(con)
		return con, nil
	}

	cols, err := c.ParseNameList()
	if err != nil {
		return con, err
	}
	for _, col := range cols {
		con.AddChild(col, TypeColumnReference)
	}
	if ctype == ConstraintForeignKey {
		if err := c.Consume("REFERENCES"); err != nil {
			return con, err
		}
		if err := c.ParseReferences(con); err != nil {
			return con, err
		}
	}
	c.parseConstraintAttributes(con)
	return con, nil
}

// ParseReferences parses the part of a REFERENCES clause after the keyword:
// table [(columns)] [MATCH ...] [ON DELETE action] [ON UPDATE action].
func (c *Context) ParseReferences(con *Node) error {
	table, err := c.ParseName()
	if err != nil {
		return err
	}
	con.AddChild(table, TypeTableReference)
	if c.Matches("(") {
		cols, err := c.ParseNameList()
		if err != nil {
			return err
		}
		for _, col := range cols {
			con.AddChild(col, TypeFKColumnReference)
		}
	}
	if c.CanConsume("MATCH") {
		c.CanConsume("FULL")
		c.CanConsume("PARTIAL")
		c.CanConsume("SIMPLE")
	}
	for c.Matches("ON") {
		var prop string
		switch {
		case c.CanConsume("ON", "DELETE"):
			prop = PropOnDelete
		case c.CanConsume("ON", "UPDATE"):
			prop = PropOnUpdate
		default:
			return nil
		}
		action, err := c.parseReferentialAction()
		if err != nil {
			return err
		}
		con.SetProperty(prop, action)
	}
	return nil
}

func (c *Context) parseReferentialAction() (string, error) {
	for _, a := range [][]string{
		{"CASCADE"}, {"SET", "NULL"}, {"SET", "DEFAULT"}, {"RESTRICT"}, {"NO", "ACTION"},
	} {
		if c.CanConsume(a...) {
			return strings.Join(a, " "), nil
		}
	}
	return "", c.Expected("a referential action")
}

func (c *Context) parseConstraintAttributes(con *Node) {
	var attrs []string
	for {
		switch {
		case c.CanConsume("NOT", "DEFERRABLE"):
			attrs = append(attrs, "NOT DEFERRABLE")
		case c.CanConsume("DEFERRABLE"):
			attrs = append(attrs, "DEFERRABLE")
		case c.CanConsume("INITIALLY", "DEFERRED"):
			attrs = append(attrs, "INITIALLY DEFERRED")
		case c.CanConsume("INITIALLY", "IMMEDIATE"):
			attrs = append(attrs, "INITIALLY IMMEDIATE")
		default:
			if len(attrs) > 0 {
				con.SetProperty(PropConstraintAttrs, attrs)
			}
			return
		}
	}
}

// ParseTableOptions parses grammar table options until the statement ends
// or an unknown clause is reached.
func (c *Context) ParseTableOptions(table *Node) error {
	for !c.AtEnd() {
		rule, ok := matchOption(c.s, c.g.tableOptions)
		if !ok {
			return nil
		}
		c.s.CanConsume(rule.phrase...)
		if err := rule.handler(c, table); err != nil {
			return err
		}
	}
	return nil
}

// ParseAlterActions parses comma-separated ALTER TABLE actions.
func (c *Context) ParseAlterActions(table *Node) error {
	for {
		rule, ok := matchOption(c.s, c.g.alterActions)
		if !ok {
			return c.Expected("an ALTER TABLE action")
		}
		c.s.CanConsume(rule.phrase...)
		if err := rule.handler(c, table); err != nil {
			return err
		}
		if !c.CanConsume(",") {
			return nil
		}
	}
}

// AddOption records a named option with a raw value on n.
func AddOption(n *Node, name, value string) *Node {
	opt := n.AddChild(name, TypeStatementOption)
	opt.SetProperty(PropValue, value)
	return opt
}
