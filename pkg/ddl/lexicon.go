package ddl

// Name is a namespaced name such as "ddl:createTableStatement".
type Name string

func (n Name) String() string { return string(n) }

// Node types shared by every grammar.
const (
	TypeStatements         Name = "ddl:statements"
	TypeUnknownStatement   Name = "ddl:unknownStatement"
	TypeProblem            Name = "ddl:ddlProblem"
	TypeStatementOption    Name = "ddl:statementOption"
	TypeColumnDefinition   Name = "ddl:columnDefinition"
	TypeTableConstraint    Name = "ddl:tableConstraint"
	TypeColumnReference    Name = "ddl:columnReference"
	TypeTableReference     Name = "ddl:tableReference"
	TypeFKColumnReference  Name = "ddl:fkColumnReference"
	TypeGrantee            Name = "ddl:grantee"
	TypePrivilege          Name = "ddl:grantPrivilege"
	TypeInsertValue        Name = "ddl:insertValue"
	TypeSchemaElement      Name = "ddl:schemaElement"
	TypeCreateTable        Name = "ddl:createTableStatement"
	TypeCreateView         Name = "ddl:createViewStatement"
	TypeCreateSchema       Name = "ddl:createSchemaStatement"
	TypeCreateDomain       Name = "ddl:createDomainStatement"
	TypeAlterTable         Name = "ddl:alterTableStatement"
	TypeDropTable          Name = "ddl:dropTableStatement"
	TypeDropView           Name = "ddl:dropViewStatement"
	TypeDropSchema         Name = "ddl:dropSchemaStatement"
	TypeDropDomain         Name = "ddl:dropDomainStatement"
	TypeGrant              Name = "ddl:grantStatement"
	TypeRevoke             Name = "ddl:revokeStatement"
	TypeInsert             Name = "ddl:insertStatement"
	TypeDropColumn         Name = "ddl:dropColumnDefinition"
	TypeAlterColumn        Name = "ddl:alterColumnDefinition"
	TypeDropConstraint     Name = "ddl:dropTableConstraintDefinition"
	TypeCreateAssertion    Name = "ddl:createAssertionStatement"
	TypeCreateCharacterSet Name = "ddl:createCharacterSetStatement"
	TypeCreateCollation    Name = "ddl:createCollationStatement"
	TypeCreateTranslation  Name = "ddl:createTranslationStatement"
	TypeDropAssertion      Name = "ddl:dropAssertionStatement"
	TypeDropCharacterSet   Name = "ddl:dropCharacterSetStatement"
	TypeDropCollation      Name = "ddl:dropCollationStatement"
	TypeDropTranslation    Name = "ddl:dropTranslationStatement"
	TypeParameter          Name = "ddl:parameterDefinition"
	TypeEnumValue          Name = "ddl:enumValue"
)

// Property names.
const (
	PropPrimaryType      = "jcr:primaryType"
	PropParserID         = "ddl:parserId"
	PropExpression       = "ddl:expression"
	PropStartLine        = "ddl:startLineNumber"
	PropStartColumn      = "ddl:startColumnNumber"
	PropStartCharIndex   = "ddl:startCharIndex"
	PropDatatypeName     = "ddl:datatypeName"
	PropDatatypeLength   = "ddl:datatypeLength"
	PropDatatypePrec     = "ddl:datatypePrecision"
	PropDatatypeScale    = "ddl:datatypeScale"
	PropNullable         = "ddl:nullable"
	PropDefaultValue     = "ddl:defaultValue"
	PropCollation        = "ddl:collationName"
	PropConstraintType   = "ddl:constraintType"
	PropCheckCondition   = "ddl:searchCondition"
	PropOnDelete         = "ddl:onDelete"
	PropOnUpdate         = "ddl:onUpdate"
	PropDropBehavior     = "ddl:dropBehavior"
	PropTemporary        = "ddl:temporary"
	PropIfExists         = "ddl:ifExists"
	PropIfNotExists      = "ddl:ifNotExists"
	PropOrReplace        = "ddl:orReplace"
	PropValue            = "ddl:value"
	PropNewName          = "ddl:newName"
	PropOwner            = "ddl:owner"
	PropAuthorization    = "ddl:schemaAuthorization"
	PropWithGrantOption  = "ddl:withGrantOption"
	PropGrantOptionFor   = "ddl:grantOptionFor"
	PropProblemLevel     = "ddl:problemLevel"
	PropMessage          = "ddl:message"
	PropProblemLine      = "ddl:problemLineNumber"
	PropProblemColumn    = "ddl:problemColumnNumber"
	PropCheckOption      = "ddl:checkOption"
	PropColumnNames      = "ddl:columnNames"
	PropDefaultOperation = "ddl:defaultOperation"
	PropQueryExpression  = "ddl:queryExpression"
	PropObjectType       = "ddl:objectType"
	PropConstraintAttrs  = "ddl:constraintAttributes"
	PropTableName        = "ddl:tableName"
	PropIndexType        = "ddl:indexType"
	PropIndexMethod      = "ddl:indexMethod"
	PropWhereClause      = "ddl:whereClause"
	PropComment          = "ddl:comment"
	PropTarget           = "ddl:target"
	PropParameterMode    = "ddl:parameterMode"
	PropReturnType       = "ddl:returnType"
	PropBody             = "ddl:body"
	PropLanguage         = "ddl:language"
)

// Unstructured is the primary type recorded on every statements container.
const Unstructured Name = "nt:unstructured"

// Problem levels.
const (
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
)

// Constraint types.
const (
	ConstraintPrimaryKey = "PRIMARY KEY"
	ConstraintUnique     = "UNIQUE"
	ConstraintForeignKey = "FOREIGN KEY"
	ConstraintCheck      = "CHECK"
)
