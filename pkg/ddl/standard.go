package ddl

// sql92Keywords are the reserved words of SQL-92 that every grammar
// recognises.
var sql92Keywords = []string{
	"ABSOLUTE", "ACTION", "ADD", "ALL", "ALLOCATE", "ALTER", "AND", "ANY", "ARE", "AS", "ASC",
	"ASSERTION", "AT", "AUTHORIZATION", "AVG", "BEGIN", "BETWEEN", "BIT", "BIT_LENGTH", "BOTH", "BY",
	"CASCADE", "CASCADED", "CASE", "CAST", "CATALOG", "CHAR", "CHARACTER", "CHAR_LENGTH",
	"CHARACTER_LENGTH", "CHECK", "CLOSE", "COALESCE", "COLLATE", "COLLATION", "COLUMN", "COMMIT",
	"CONNECT", "CONNECTION", "CONSTRAINT", "CONSTRAINTS", "CONTINUE", "CONVERT", "CORRESPONDING",
	"COUNT", "CREATE", "CROSS", "CURRENT", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "CURSOR", "DATE", "DAY", "DEALLOCATE", "DEC", "DECIMAL", "DECLARE", "DEFAULT",
	"DEFERRABLE", "DEFERRED", "DELETE", "DESC", "DESCRIBE", "DESCRIPTOR", "DIAGNOSTICS", "DISCONNECT",
	"DISTINCT", "DOMAIN", "DOUBLE", "DROP", "ELSE", "END", "ESCAPE", "EXCEPT", "EXCEPTION", "EXEC",
	"EXECUTE", "EXISTS", "EXTERNAL", "EXTRACT", "FALSE", "FETCH", "FIRST", "FLOAT", "FOR", "FOREIGN",
	"FOUND", "FROM", "FULL", "GET", "GLOBAL", "GO", "GOTO", "GRANT", "GROUP", "HAVING", "HOUR",
	"IDENTITY", "IMMEDIATE", "IN", "INDICATOR", "INITIALLY", "INNER", "INPUT", "INSENSITIVE", "INSERT",
	"INT", "INTEGER", "INTERSECT", "INTERVAL", "INTO", "IS", "ISOLATION", "JOIN", "KEY", "LANGUAGE",
	"LAST", "LEADING", "LEFT", "LEVEL", "LIKE", "LOCAL", "LOWER", "MATCH", "MAX", "MIN", "MINUTE",
	"MODULE", "MONTH", "NAMES", "NATIONAL", "NATURAL", "NCHAR", "NEXT", "NO", "NOT", "NULL", "NULLIF",
	"NUMERIC", "OCTET_LENGTH", "OF", "ON", "ONLY", "OPEN", "OPTION", "OR", "ORDER", "OUTER", "OUTPUT",
	"OVERLAPS", "PAD", "PARTIAL", "POSITION", "PRECISION", "PREPARE", "PRESERVE", "PRIMARY", "PRIOR",
	"PRIVILEGES", "PROCEDURE", "PUBLIC", "READ", "REAL", "REFERENCES", "RELATIVE", "RESTRICT",
	"REVOKE", "RIGHT", "ROLLBACK", "ROWS", "SCHEMA", "SCROLL", "SECOND", "SECTION", "SELECT",
	"SESSION", "SESSION_USER", "SET", "SIZE", "SMALLINT", "SOME", "SPACE", "SQL", "SQLCODE",
	"SQLERROR", "SQLSTATE", "SUBSTRING", "SUM", "SYSTEM_USER", "TABLE", "TEMPORARY", "THEN", "TIME",
	"TIMESTAMP", "TIMEZONE_HOUR", "TIMEZONE_MINUTE", "TO", "TRAILING", "TRANSACTION", "TRANSLATE",
	"TRANSLATION", "TRIM", "TRUE", "UNION", "UNIQUE", "UNKNOWN", "UPDATE", "UPPER", "USAGE", "USER",
	"USING", "VALUE", "VALUES", "VARCHAR", "VARYING", "VIEW", "WHEN", "WHENEVER", "WHERE", "WITH",
	"WORK", "WRITE", "YEAR", "ZONE",
}

// StandardID identifies the SQL-92 grammar.
const StandardID = "STANDARD"

var standard = NewGrammar(StandardID).
	Pragmas("sql92", "ansi").
	Keywords(sql92Keywords...).
	LengthTypes(
		"CHAR", "CHARACTER", "VARCHAR", "CHAR VARYING", "CHARACTER VARYING",
		"NCHAR", "NATIONAL CHAR", "NATIONAL CHARACTER", "NCHAR VARYING",
		"NATIONAL CHAR VARYING", "NATIONAL CHARACTER VARYING", "BIT", "BIT VARYING",
	).
	NumericTypes("NUMERIC", "DECIMAL", "DEC", "FLOAT", "TIME", "TIMESTAMP").
	DataTypes(
		"INTEGER", "INT", "SMALLINT", "REAL", "DOUBLE PRECISION", "DATE",
		"INTERVAL YEAR", "INTERVAL YEAR TO MONTH", "INTERVAL MONTH", "INTERVAL DAY",
		"INTERVAL DAY TO HOUR", "INTERVAL DAY TO MINUTE", "INTERVAL DAY TO SECOND",
		"INTERVAL HOUR", "INTERVAL HOUR TO MINUTE", "INTERVAL HOUR TO SECOND",
		"INTERVAL MINUTE", "INTERVAL MINUTE TO SECOND", "INTERVAL SECOND",
	).
	TypeSuffixes("WITH TIME ZONE", "WITHOUT TIME ZONE", "WITH LOCAL TIME ZONE", "VARYING").
	Statement("CREATE TABLE", CreateTable("")).
	Statement("CREATE GLOBAL TEMPORARY TABLE", CreateTable("GLOBAL")).
	Statement("CREATE LOCAL TEMPORARY TABLE", CreateTable("LOCAL")).
	Statement("CREATE VIEW", CreateView(false)).
	Statement("CREATE OR REPLACE VIEW", CreateView(true)).
	Statement("CREATE SCHEMA", createSchema).
	Statement("CREATE DOMAIN", createDomain).
	Statement("CREATE ASSERTION", createAssertion).
	Statement("CREATE CHARACTER SET", CreateObject(TypeCreateCharacterSet)).
	Statement("CREATE COLLATION", CreateObject(TypeCreateCollation)).
	Statement("CREATE TRANSLATION", CreateObject(TypeCreateTranslation)).
	Statement("ALTER TABLE", alterTable).
	Statement("DROP TABLE", Drop(TypeDropTable)).
	Statement("DROP VIEW", Drop(TypeDropView)).
	Statement("DROP SCHEMA", Drop(TypeDropSchema)).
	Statement("DROP DOMAIN", Drop(TypeDropDomain)).
	Statement("DROP ASSERTION", Drop(TypeDropAssertion)).
	Statement("DROP CHARACTER SET", Drop(TypeDropCharacterSet)).
	Statement("DROP COLLATION", Drop(TypeDropCollation)).
	Statement("DROP TRANSLATION", Drop(TypeDropTranslation)).
	Statement("GRANT", grant).
	Statement("REVOKE", revoke).
	Statement("INSERT INTO", insertInto).
	AlterAction("ADD", addColumnOrConstraint).
	AlterAction("ADD COLUMN", addColumn).
	AlterAction("DROP", dropColumn).
	AlterAction("DROP COLUMN", dropColumn).
	AlterAction("DROP CONSTRAINT", dropConstraint).
	AlterAction("ALTER", alterColumn).
	AlterAction("ALTER COLUMN", alterColumn).
	ColumnOption("NOT NULL", setNullable("NOT NULL")).
	ColumnOption("NULL", setNullable("NULL")).
	ColumnOption("DEFAULT", columnDefault).
	ColumnOption("COLLATE", columnCollate).
	ColumnOption("CONSTRAINT", namedColumnConstraint).
	ColumnOption("PRIMARY KEY", columnConstraint(ConstraintPrimaryKey)).
	ColumnOption("UNIQUE", columnConstraint(ConstraintUnique)).
	ColumnOption("REFERENCES", columnConstraint(ConstraintForeignKey)).
	ColumnOption("CHECK", columnConstraint(ConstraintCheck)).
	TableOption("ON COMMIT", onCommit).
	Build()

// Standard returns the SQL-92 grammar. Vendor grammars extend it.
func Standard() *Grammar { return standard }
