// Package oracle provides the Oracle DDL grammar. It extends the standard
// grammar with Oracle types, synonyms, sequences, indexes, PL/SQL units
// and physical table options.
package oracle

import "github.com/leapstack-labs/reposql/pkg/ddl"

// ID identifies the Oracle grammar.
const ID = "ORACLE"

// oracleKeywords are Oracle reserved and frequently used non-reserved
// words that do not appear in SQL-92.
var oracleKeywords = []string{
	"ACCESS", "AFTER", "AUDIT", "BEFORE", "BFILE", "BINARY_DOUBLE", "BINARY_FLOAT", "BITMAP",
	"BLOB", "BODY", "CACHE", "CLOB", "CLUSTER", "COMMENT", "COMPRESS", "CYCLE", "DISABLE", "EACH",
	"ELSIF", "ENABLE", "EXCLUSIVE", "FILE", "FUNCTION", "IDENTIFIED", "INCREMENT", "INITRANS",
	"INSTEAD", "LOCK", "LOGGING", "LONG", "LOOP", "MAXEXTENTS", "MAXTRANS", "MAXVALUE", "MINUS",
	"MINVALUE", "MODE", "MODIFY", "MONITORING", "MOVEMENT", "NCLOB", "NOAUDIT", "NOCACHE",
	"NOCOMPRESS", "NOCYCLE", "NOLOGGING", "NOMAXVALUE", "NOMINVALUE", "NOMONITORING", "NOORDER",
	"NOPARALLEL", "NOWAIT", "NUMBER", "NVARCHAR2", "OFFLINE", "ONLINE", "ORGANIZATION", "PACKAGE",
	"PARALLEL", "PCTFREE", "PCTUSED", "PLS_INTEGER", "PRAGMA", "PURGE", "RAISE", "RAW", "RENAME",
	"REPLACE", "RESOURCE", "RETURN", "ROW", "ROWID", "ROWNUM", "SEQUENCE", "SHARE", "STORAGE",
	"SYNONYM", "SYSDATE", "TABLESPACE", "TRIGGER", "UID", "UROWID", "VALIDATE", "VARCHAR2", "XMLTYPE",
}

// Oracle is the Oracle grammar.
var Oracle = ddl.NewGrammar(ID).
	Extends(ddl.Standard()).
	Pragmas("oracle", "plsql").
	Keywords(oracleKeywords...).
	LengthTypes("VARCHAR2", "NVARCHAR2", "RAW", "UROWID").
	NumericTypes("NUMBER", "FLOAT").
	DataTypes(
		"BINARY_FLOAT", "BINARY_DOUBLE", "LONG", "LONG RAW", "BLOB", "CLOB", "NCLOB",
		"BFILE", "ROWID", "XMLTYPE", "PLS_INTEGER", "BOOLEAN",
	).
	// Synonyms, sequences and indexes
	Statement("CREATE SYNONYM", ddl.CreateSynonym(TypeCreateSynonym)).
	Statement("CREATE PUBLIC SYNONYM", public(ddl.CreateSynonym(TypeCreateSynonym))).
	Statement("CREATE OR REPLACE SYNONYM", orReplace(ddl.CreateSynonym(TypeCreateSynonym))).
	Statement("CREATE OR REPLACE PUBLIC SYNONYM", orReplace(public(ddl.CreateSynonym(TypeCreateSynonym)))).
	Statement("CREATE SEQUENCE", ddl.CreateSequence(TypeCreateSequence)).
	Statement("CREATE INDEX", ddl.CreateIndex(TypeCreateIndex, "")).
	Statement("CREATE UNIQUE INDEX", ddl.CreateIndex(TypeCreateIndex, "UNIQUE")).
	Statement("CREATE BITMAP INDEX", ddl.CreateIndex(TypeCreateIndex, "BITMAP")).
	// PL/SQL units
	Statement("CREATE PROCEDURE", unit(TypeCreateProcedure)).
	Statement("CREATE OR REPLACE PROCEDURE", orReplace(unit(TypeCreateProcedure))).
	Statement("CREATE FUNCTION", unit(TypeCreateFunction)).
	Statement("CREATE OR REPLACE FUNCTION", orReplace(unit(TypeCreateFunction))).
	Statement("CREATE PACKAGE", unit(TypeCreatePackage)).
	Statement("CREATE OR REPLACE PACKAGE", orReplace(unit(TypeCreatePackage))).
	Statement("CREATE PACKAGE BODY", unit(TypeCreatePackageBody)).
	Statement("CREATE OR REPLACE PACKAGE BODY", orReplace(unit(TypeCreatePackageBody))).
	Statement("CREATE TRIGGER", unit(TypeCreateTrigger)).
	Statement("CREATE OR REPLACE TRIGGER", orReplace(unit(TypeCreateTrigger))).
	// Other statements
	Statement("COMMENT ON", ddl.CommentOn(TypeCommentOn)).
	Statement("RENAME", ddl.Rename(TypeRename)).
	Statement("DROP SEQUENCE", ddl.Drop(TypeDropSequence)).
	Statement("DROP SYNONYM", ddl.Drop(TypeDropSynonym)).
	Statement("DROP PUBLIC SYNONYM", public(ddl.Drop(TypeDropSynonym))).
	Statement("DROP INDEX", ddl.Drop(TypeDropIndex)).
	Statement("DROP PROCEDURE", ddl.Drop(TypeDropProcedure)).
	Statement("DROP FUNCTION", ddl.Drop(TypeDropFunction)).
	Statement("DROP PACKAGE", ddl.Drop(TypeDropPackage)).
	Statement("DROP PACKAGE BODY", ddl.Drop(TypeDropPackageBody)).
	Statement("DROP TRIGGER", ddl.Drop(TypeDropTrigger)).
	// ALTER TABLE
	AlterAction("ADD", addElements).
	AlterAction("MODIFY", modifyColumns).
	AlterAction("RENAME COLUMN", renameColumn).
	AlterAction("RENAME TO", renameTable).
	// Physical attributes
	TableOption("TABLESPACE", ddl.ValueOption("TABLESPACE")).
	TableOption("PCTFREE", ddl.ValueOption("PCTFREE")).
	TableOption("PCTUSED", ddl.ValueOption("PCTUSED")).
	TableOption("INITRANS", ddl.ValueOption("INITRANS")).
	TableOption("MAXTRANS", ddl.ValueOption("MAXTRANS")).
	TableOption("STORAGE", ddl.ValueOption("STORAGE")).
	TableOption("ORGANIZATION", ddl.ValueOption("ORGANIZATION")).
	TableOption("LOGGING", ddl.FlagOption("LOGGING")).
	TableOption("NOLOGGING", ddl.FlagOption("NOLOGGING")).
	TableOption("COMPRESS", ddl.FlagOption("COMPRESS")).
	TableOption("NOCOMPRESS", ddl.FlagOption("NOCOMPRESS")).
	TableOption("CACHE", ddl.FlagOption("CACHE")).
	TableOption("NOCACHE", ddl.FlagOption("NOCACHE")).
	TableOption("PARALLEL", ddl.FlagOption("PARALLEL")).
	TableOption("NOPARALLEL", ddl.FlagOption("NOPARALLEL")).
	TableOption("MONITORING", ddl.FlagOption("MONITORING")).
	TableOption("NOMONITORING", ddl.FlagOption("NOMONITORING")).
	TableOption("ENABLE ROW MOVEMENT", ddl.FlagOption("ENABLE ROW MOVEMENT")).
	TableOption("DISABLE ROW MOVEMENT", ddl.FlagOption("DISABLE ROW MOVEMENT")).
	Build()
