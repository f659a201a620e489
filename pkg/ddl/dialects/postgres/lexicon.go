package postgres

import "github.com/leapstack-labs/reposql/pkg/ddl"

// Node types specific to PostgreSQL.
const (
	TypeCreateIndex     ddl.Name = "postgresddl:createIndexStatement"
	TypeCreateSequence  ddl.Name = "postgresddl:createSequenceStatement"
	TypeCreateExtension ddl.Name = "postgresddl:createExtensionStatement"
	TypeCreateType      ddl.Name = "postgresddl:createTypeStatement"
	TypeCreateFunction  ddl.Name = "postgresddl:createFunctionStatement"
	TypeCommentOn       ddl.Name = "postgresddl:commentOnStatement"
	TypeRenameColumn    ddl.Name = "postgresddl:renameColumn"
	TypeDropSequence    ddl.Name = "postgresddl:dropSequenceStatement"
	TypeDropIndex       ddl.Name = "postgresddl:dropIndexStatement"
	TypeDropExtension   ddl.Name = "postgresddl:dropExtensionStatement"
	TypeDropType        ddl.Name = "postgresddl:dropTypeStatement"
	TypeDropFunction    ddl.Name = "postgresddl:dropFunctionStatement"
)

// Property names specific to PostgreSQL.
const (
	PropConcurrently = "postgresddl:concurrently"
	PropInherits     = "postgresddl:inherits"
	PropTypeKind     = "postgresddl:typeKind"
)
