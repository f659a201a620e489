package oracle

import "github.com/leapstack-labs/reposql/pkg/ddl"

// Node types specific to Oracle.
const (
	TypeCreateSynonym     ddl.Name = "oracleddl:createSynonymStatement"
	TypeCreateSequence    ddl.Name = "oracleddl:createSequenceStatement"
	TypeCreateIndex       ddl.Name = "oracleddl:createIndexStatement"
	TypeCreateProcedure   ddl.Name = "oracleddl:createProcedureStatement"
	TypeCreateFunction    ddl.Name = "oracleddl:createFunctionStatement"
	TypeCreatePackage     ddl.Name = "oracleddl:createPackageStatement"
	TypeCreatePackageBody ddl.Name = "oracleddl:createPackageBodyStatement"
	TypeCreateTrigger     ddl.Name = "oracleddl:createTriggerStatement"
	TypeCommentOn         ddl.Name = "oracleddl:commentOnStatement"
	TypeRename            ddl.Name = "oracleddl:renameStatement"
	TypeDropSequence      ddl.Name = "oracleddl:dropSequenceStatement"
	TypeDropSynonym       ddl.Name = "oracleddl:dropSynonymStatement"
	TypeDropIndex         ddl.Name = "oracleddl:dropIndexStatement"
	TypeDropProcedure     ddl.Name = "oracleddl:dropProcedureStatement"
	TypeDropFunction      ddl.Name = "oracleddl:dropFunctionStatement"
	TypeDropPackage       ddl.Name = "oracleddl:dropPackageStatement"
	TypeDropPackageBody   ddl.Name = "oracleddl:dropPackageBodyStatement"
	TypeDropTrigger       ddl.Name = "oracleddl:dropTriggerStatement"
)

// Property names specific to Oracle.
const (
	PropPublic     = "oracleddl:public"
	PropParameters = "oracleddl:parameters"
)
