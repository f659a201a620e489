package ddl

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// StatementHandler parses one statement. It is called after the statement's
// start phrase has been consumed and returns the node it appended to parent.
type StatementHandler func(c *Context, parent *Node) (*Node, error)

// OptionHandler parses one clause of a statement (an ALTER TABLE action, a
// column option or a table option) into target. It is called after the
// clause's phrase has been consumed.
type OptionHandler func(c *Context, target *Node) error

// TypeKind says how parenthesised data type arguments are recorded.
type TypeKind int

const (
	// TypePlain types take no arguments.
	TypePlain TypeKind = iota
	// TypeLength types take a length: VARCHAR(20).
	TypeLength
	// TypeNumeric types take a precision and optional scale: NUMERIC(10,2).
	TypeNumeric
)

type statementRule struct {
	phrase  []string
	handler StatementHandler
}

type optionRule struct {
	phrase  []string
	handler OptionHandler
}

type dataType struct {
	phrase []string
	kind   TypeKind
}

func (r statementRule) key() string { return phraseKey(r.phrase) }
func (r optionRule) key() string    { return phraseKey(r.phrase) }
func (d dataType) key() string      { return phraseKey(d.phrase) }

func phraseKey(words []string) string { return strings.ToUpper(strings.Join(words, " ")) }

func splitPhrase(phrase string) []string { return strings.Fields(phrase) }

// Grammar is a table-driven dialect parser. Grammars are declared with
// NewGrammar and may extend another grammar, inheriting its vocabulary and
// rules.
type Grammar struct {
	id            string
	pragmas       []string
	keywords      []string
	dataTypes     []dataType
	typeSuffixes  [][]string
	statements    []statementRule
	alterActions  []optionRule
	columnOptions []optionRule
	tableOptions  []optionRule
}

var _ Parser = (*Grammar)(nil)

// ID returns the dialect identifier.
func (g *Grammar) ID() string { return g.id }

// Pragmas returns the names that select this grammar in a dialect pragma.
func (g *Grammar) Pragmas() []string { return slices.Clone(g.pragmas) }

// Keywords returns every word the grammar registers, statement phrases and
// data type names included.
func (g *Grammar) Keywords() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(words ...string) {
		for _, w := range words {
			w = strings.ToUpper(w)
			if _, ok := seen[w]; !ok {
				seen[w] = struct{}{}
				out = append(out, w)
			}
		}
	}
	add(g.keywords...)
	for _, r := range g.statements {
		add(r.phrase...)
	}
	for _, d := range g.dataTypes {
		add(d.phrase...)
	}
	for _, p := range g.typeSuffixes {
		add(p...)
	}
	return out
}

// StatementPhrases returns the statement start phrases in match order.
func (g *Grammar) StatementPhrases() []string {
	out := make([]string, len(g.statements))
	for i, r := range g.statements {
		out[i] = r.key()
	}
	return out
}

// IsType reports whether text carries a dialect pragma naming this grammar.
func (g *Grammar) IsType(text string) bool {
	name, ok := DialectPragma(text)
	if !ok {
		return false
	}
	if strings.EqualFold(name, g.id) {
		return true
	}
	for _, p := range g.pragmas {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
}

// RegisterWords declares the grammar's keywords and statement starts.
func (g *Grammar) RegisterWords(s *Stream) {
	s.RegisterKeywords(g.keywords...)
	for _, d := range g.dataTypes {
		s.RegisterKeywords(d.phrase...)
	}
	for _, p := range g.typeSuffixes {
		s.RegisterKeywords(p...)
	}
	for _, r := range g.statements {
		s.RegisterStatementStart(r.phrase...)
	}
}

// NumberOfKeywords returns the number of keyword tokens in s.
func (g *Grammar) NumberOfKeywords(s *Stream) int { return s.KeywordCount() }

// Parse parses every statement in s into root. A syntax error inside a
// recognised statement is recorded as an ERROR problem on root and parsing
// resumes at the next statement; Parse then reports false. When no later
// statement exists the error is returned.
func (g *Grammar) Parse(s *Stream, root *Node) (bool, error) {
	if !s.Started() {
		g.RegisterWords(s)
		s.Start()
	}
	c := &Context{s: s, g: g, root: root}
	ok := true
	for {
		for s.CanConsume(";") {
		}
		if !s.HasNext() {
			return ok, nil
		}
		start := s.Mark()
		err := c.parseStatement(root, true)
		if err == nil {
			continue
		}
		pe := asParseError(err, s.Position())
		ok = false
		if !c.resync(start) {
			return false, pe
		}
		c.Problem(LevelError, pe)
	}
}

func asParseError(err error, pos token.Position) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return &ParseError{Pos: pos, Message: err.Error(), Err: err}
}

func (g *Grammar) matchStatement(s *Stream) (statementRule, bool) {
	for _, r := range g.statements {
		if s.Matches(r.phrase...) {
			return r, true
		}
	}
	return statementRule{}, false
}

func matchOption(s *Stream, rules []optionRule) (optionRule, bool) {
	for _, r := range rules {
		if s.Matches(r.phrase...) {
			return r, true
		}
	}
	return optionRule{}, false
}

func (g *Grammar) matchDataType(s *Stream) (dataType, bool) {
	for _, d := range g.dataTypes {
		if s.Matches(d.phrase...) {
			return d, true
		}
	}
	return dataType{}, false
}

func (g *Grammar) String() string {
	return fmt.Sprintf("Grammar(%s)", g.id)
}

// GrammarBuilder provides a fluent API for constructing grammars.
type GrammarBuilder struct {
	g *Grammar
}

// NewGrammar starts a grammar with the given dialect identifier.
func NewGrammar(id string) *GrammarBuilder {
	return &GrammarBuilder{g: &Grammar{id: id}}
}

// Extends copies base's vocabulary and rules. Rules added afterwards with
// the same phrase replace the inherited ones.
func (b *GrammarBuilder) Extends(base *Grammar) *GrammarBuilder {
	b.g.keywords = append(b.g.keywords, base.keywords...)
	b.g.dataTypes = append(b.g.dataTypes, base.dataTypes...)
	b.g.typeSuffixes = append(b.g.typeSuffixes, base.typeSuffixes...)
	b.g.statements = append(b.g.statements, base.statements...)
	b.g.alterActions = append(b.g.alterActions, base.alterActions...)
	b.g.columnOptions = append(b.g.columnOptions, base.columnOptions...)
	b.g.tableOptions = append(b.g.tableOptions, base.tableOptions...)
	return b
}

// Pragmas adds names accepted by IsType in addition to the identifier.
func (b *GrammarBuilder) Pragmas(names ...string) *GrammarBuilder {
	b.g.pragmas = append(b.g.pragmas, names...)
	return b
}

// Keywords adds reserved words.
func (b *GrammarBuilder) Keywords(words ...string) *GrammarBuilder {
	b.g.keywords = append(b.g.keywords, words...)
	return b
}

// DataTypes adds data types that take no arguments.
func (b *GrammarBuilder) DataTypes(phrases ...string) *GrammarBuilder {
	return b.addTypes(TypePlain, phrases)
}

// LengthTypes adds data types with an optional length.
func (b *GrammarBuilder) LengthTypes(phrases ...string) *GrammarBuilder {
	return b.addTypes(TypeLength, phrases)
}

// NumericTypes adds data types with an optional precision and scale.
func (b *GrammarBuilder) NumericTypes(phrases ...string) *GrammarBuilder {
	return b.addTypes(TypeNumeric, phrases)
}

func (b *GrammarBuilder) addTypes(kind TypeKind, phrases []string) *GrammarBuilder {
	for _, p := range phrases {
		d := dataType{phrase: splitPhrase(p), kind: kind}
		b.g.dataTypes = replaceOrAdd(b.g.dataTypes, d, dataType.key)
	}
	return b
}

// TypeSuffixes adds phrases that may follow a data type and become part of
// its name, such as "WITH TIME ZONE".
func (b *GrammarBuilder) TypeSuffixes(phrases ...string) *GrammarBuilder {
	for _, p := range phrases {
		b.g.typeSuffixes = replaceOrAdd(b.g.typeSuffixes, splitPhrase(p), phraseKey)
	}
	return b
}

// Statement adds a statement rule for a start phrase such as "CREATE TABLE".
func (b *GrammarBuilder) Statement(phrase string, handler StatementHandler) *GrammarBuilder {
	r := statementRule{phrase: splitPhrase(phrase), handler: handler}
	b.g.statements = replaceOrAdd(b.g.statements, r, statementRule.key)
	return b
}

// AlterAction adds an ALTER TABLE action such as "ADD COLUMN".
func (b *GrammarBuilder) AlterAction(phrase string, handler OptionHandler) *GrammarBuilder {
	b.g.alterActions = replaceOrAdd(b.g.alterActions, optionRule{splitPhrase(phrase), handler}, optionRule.key)
	return b
}

// ColumnOption adds a column definition clause such as "NOT NULL".
func (b *GrammarBuilder) ColumnOption(phrase string, handler OptionHandler) *GrammarBuilder {
	b.g.columnOptions = replaceOrAdd(b.g.columnOptions, optionRule{splitPhrase(phrase), handler}, optionRule.key)
	return b
}

// TableOption adds a clause accepted after a table's element list.
func (b *GrammarBuilder) TableOption(phrase string, handler OptionHandler) *GrammarBuilder {
	b.g.tableOptions = replaceOrAdd(b.g.tableOptions, optionRule{splitPhrase(phrase), handler}, optionRule.key)
	return b
}

// Build finalizes the grammar. Rules are ordered longest phrase first so
// that "CREATE OR REPLACE VIEW" is tried before "CREATE".
func (b *GrammarBuilder) Build() *Grammar {
	g := *b.g
	g.keywords = slices.Clone(g.keywords)
	g.pragmas = slices.Clone(g.pragmas)
	g.dataTypes = sortByPhrase(g.dataTypes, func(d dataType) []string { return d.phrase })
	g.typeSuffixes = sortByPhrase(g.typeSuffixes, func(p []string) []string { return p })
	g.statements = sortByPhrase(g.statements, func(r statementRule) []string { return r.phrase })
	g.alterActions = sortByPhrase(g.alterActions, func(r optionRule) []string { return r.phrase })
	g.columnOptions = sortByPhrase(g.columnOptions, func(r optionRule) []string { return r.phrase })
	g.tableOptions = sortByPhrase(g.tableOptions, func(r optionRule) []string { return r.phrase })
	return &g
}

func replaceOrAdd[T any](rules []T, r T, key func(T) string) []T {
	k := key(r)
	for i := range rules {
		if key(rules[i]) == k {
			out := slices.Clone(rules)
			out[i] = r
			return out
		}
	}
	return append(rules, r)
}

func sortByPhrase[T any](rules []T, phrase func(T) []string) []T {
	out := slices.Clone(rules)
	slices.SortStableFunc(out, func(a, b T) int {
		return len(phrase(b)) - len(phrase(a))
	})
	return out
}
