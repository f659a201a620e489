package derby

import "github.com/leapstack-labs/reposql/pkg/ddl"

// Node types specific to Derby.
const (
	TypeCreateIndex            ddl.Name = "derbyddl:createIndexStatement"
	TypeCreateSynonym          ddl.Name = "derbyddl:createSynonymStatement"
	TypeCreateTrigger          ddl.Name = "derbyddl:createTriggerStatement"
	TypeCreateFunction         ddl.Name = "derbyddl:createFunctionStatement"
	TypeCreateProcedure        ddl.Name = "derbyddl:createProcedureStatement"
	TypeDeclareGlobalTempTable ddl.Name = "derbyddl:declareGlobalTemporaryTableStatement"
	TypeRenameTable            ddl.Name = "derbyddl:renameTableStatement"
	TypeRenameColumn           ddl.Name = "derbyddl:renameColumnStatement"
	TypeRenameIndex            ddl.Name = "derbyddl:renameIndexStatement"
	TypeLockTable              ddl.Name = "derbyddl:lockTableStatement"
	TypeDropIndex              ddl.Name = "derbyddl:dropIndexStatement"
	TypeDropSynonym            ddl.Name = "derbyddl:dropSynonymStatement"
	TypeDropTrigger            ddl.Name = "derbyddl:dropTriggerStatement"
	TypeDropFunction           ddl.Name = "derbyddl:dropFunctionStatement"
	TypeDropProcedure          ddl.Name = "derbyddl:dropProcedureStatement"
)

// Property names specific to Derby.
const (
	PropTriggerTime     = "derbyddl:triggerTime"
	PropTriggerEvent    = "derbyddl:triggerEvent"
	PropTriggerScope    = "derbyddl:triggerScope"
	PropReferencing     = "derbyddl:referencing"
	PropLockMode        = "derbyddl:lockMode"
	PropIdentity        = "derbyddl:identity"
	PropIdentityOptions = "derbyddl:identityOptions"
	PropGenerated       = "derbyddl:generationExpression"
)
