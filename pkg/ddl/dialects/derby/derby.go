// Package derby provides the Apache Derby DDL grammar.
package derby

import "github.com/leapstack-labs/reposql/pkg/ddl"

// ID identifies the Derby grammar.
const ID = "DERBY"

var derbyKeywords = []string{
	"AFTER", "ALWAYS", "ATOMIC", "BEFORE", "BIGINT", "BLOB", "BOOLEAN", "CALLED", "CLOB", "CONTAINS",
	"DATA", "DB2SQL", "DETERMINISTIC", "DYNAMIC", "EACH", "EXCLUSIVE", "FUNCTION", "GENERATED",
	"INCREMENT", "INOUT", "JAVA", "LOCK", "LOGGED", "LONG", "MODE", "MODIFIES", "NEW", "NEW_TABLE",
	"OLD", "OLD_TABLE", "OUT", "PARAMETER", "READS", "REFERENCING", "RENAME", "RESULT", "RETURNS",
	"ROW", "SETS", "SHARE", "STATEMENT", "STYLE", "SYNONYM", "TRIGGER", "XML",
}

// Derby is the Derby grammar.
var Derby = ddl.NewGrammar(ID).
	Extends(ddl.Standard()).
	Pragmas("derby", "javadb").
	Keywords(derbyKeywords...).
	LengthTypes("CLOB", "BLOB", "CHARACTER LARGE OBJECT", "BINARY LARGE OBJECT").
	DataTypes("BIGINT", "LONG VARCHAR", "BOOLEAN", "XML", "DOUBLE").
	TypeSuffixes("FOR BIT DATA").
	Statement("CREATE INDEX", ddl.CreateIndex(TypeCreateIndex, "")).
	Statement("CREATE UNIQUE INDEX", ddl.CreateIndex(TypeCreateIndex, "UNIQUE")).
	Statement("CREATE SYNONYM", ddl.CreateSynonym(TypeCreateSynonym)).
	Statement("CREATE TRIGGER", createTrigger).
	Statement("CREATE FUNCTION", routine(TypeCreateFunction)).
	Statement("CREATE PROCEDURE", routine(TypeCreateProcedure)).
	Statement("DECLARE GLOBAL TEMPORARY TABLE", declareTempTable).
	Statement("RENAME TABLE", ddl.Rename(TypeRenameTable)).
	Statement("RENAME COLUMN", ddl.Rename(TypeRenameColumn)).
	Statement("RENAME INDEX", ddl.Rename(TypeRenameIndex)).
	Statement("LOCK TABLE", lockTable).
	Statement("DROP INDEX", ddl.Drop(TypeDropIndex)).
	Statement("DROP SYNONYM", ddl.Drop(TypeDropSynonym)).
	Statement("DROP TRIGGER", ddl.Drop(TypeDropTrigger)).
	Statement("DROP FUNCTION", ddl.Drop(TypeDropFunction)).
	Statement("DROP PROCEDURE", ddl.Drop(TypeDropProcedure)).
	ColumnOption("GENERATED ALWAYS AS IDENTITY", identity("ALWAYS")).
	ColumnOption("GENERATED BY DEFAULT AS IDENTITY", identity("BY DEFAULT")).
	ColumnOption("GENERATED ALWAYS AS", generatedColumn).
	ColumnOption("WITH DEFAULT", withDefault).
	TableOption("NOT LOGGED", ddl.FlagOption("NOT LOGGED")).
	TableOption("ON ROLLBACK DELETE ROWS", ddl.FlagOption("ON ROLLBACK DELETE ROWS")).
	Build()
