// Package postgres provides the PostgreSQL DDL grammar.
package postgres

import "github.com/leapstack-labs/reposql/pkg/ddl"

// ID identifies the PostgreSQL grammar.
const ID = "POSTGRES"

// postgresReservedWords contains common PostgreSQL reserved words.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// postgresDDLWords are non-reserved words that mark PostgreSQL DDL.
var postgresDDLWords = []string{
	"CONCURRENTLY", "ENUM", "EXTENSION", "IMMUTABLE", "INHERITS", "LEAKPROOF", "OIDS", "OWNED",
	"OWNER", "PLPGSQL", "RENAME", "RETURNS", "SECURITY", "SEQUENCE", "SETOF", "STABLE", "STRICT",
	"TABLESPACE", "VOLATILE",
}

// Postgres is the PostgreSQL grammar.
var Postgres = ddl.NewGrammar(ID).
	Extends(ddl.Standard()).
	Pragmas("postgres", "postgresql", "pg").
	Keywords(postgresReservedWords...).
	Keywords(postgresDDLWords...).
	LengthTypes("VARBIT").
	NumericTypes("TIMESTAMPTZ", "TIMETZ", "INTERVAL").
	DataTypes(
		"SMALLSERIAL", "SERIAL", "BIGSERIAL", "SERIAL2", "SERIAL4", "SERIAL8",
		"BIGINT", "INT2", "INT4", "INT8", "FLOAT4", "FLOAT8", "BOOLEAN", "BOOL",
		"TEXT", "BYTEA", "JSON", "JSONB", "UUID", "MONEY", "INET", "CIDR", "MACADDR",
		"TSVECTOR", "TSQUERY", "XML", "POINT", "DATERANGE", "TSTZRANGE", "INT4RANGE",
	).
	Statement("CREATE INDEX", createIndex("")).
	Statement("CREATE UNIQUE INDEX", createIndex("UNIQUE")).
	Statement("CREATE SEQUENCE", ddl.CreateSequence(TypeCreateSequence)).
	Statement("CREATE EXTENSION", createExtension).
	Statement("CREATE TYPE", createType).
	Statement("CREATE FUNCTION", createFunction).
	Statement("CREATE OR REPLACE FUNCTION", orReplace(createFunction)).
	Statement("COMMENT ON", ddl.CommentOn(TypeCommentOn)).
	Statement("DROP SEQUENCE", ddl.Drop(TypeDropSequence)).
	Statement("DROP INDEX", dropIndex).
	Statement("DROP EXTENSION", ddl.Drop(TypeDropExtension)).
	Statement("DROP TYPE", ddl.Drop(TypeDropType)).
	Statement("DROP FUNCTION", dropFunction).
	AlterAction("OWNER TO", ownerTo).
	AlterAction("RENAME TO", renameTable).
	AlterAction("RENAME COLUMN", renameColumn).
	AlterAction("RENAME", renameColumn).
	ColumnOption("DEFAULT", columnDefault).
	TableOption("INHERITS", inherits).
	TableOption("TABLESPACE", ddl.ValueOption("TABLESPACE")).
	TableOption("PARTITION BY", ddl.ValueOption("PARTITION BY")).
	TableOption("WITH", ddl.ValueOption("WITH")).
	TableOption("WITHOUT OIDS", ddl.FlagOption("WITHOUT OIDS")).
	Build()
