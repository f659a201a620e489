package postgres_test

import (
	"testing"

	"github.com/leapstack-labs/reposql/pkg/ddl"
	"github.com/leapstack-labs/reposql/pkg/ddl/dialects/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) *ddl.Node {
	t.Helper()
	root, err := ddl.NewParsers([]ddl.Parser{ddl.Standard(), postgres.Postgres}).Parse(text)
	require.NoError(t, err)
	require.Equal(t, postgres.ID, root.PropertyString(ddl.PropParserID), "postgres should be selected")
	require.Empty(t, root.ChildrenOfType(ddl.TypeProblem), root.String())
	return root
}

func TestCreateTableWithPostgresTypes(t *testing.T) {
	root := parse(t, `CREATE TABLE IF NOT EXISTS public.events (
  id BIGSERIAL PRIMARY KEY,
  payload JSONB NOT NULL DEFAULT '{}'::jsonb,
  tags TEXT[],
  created TIMESTAMPTZ(3) DEFAULT now(),
  ref UUID REFERENCES refs (id) ON DELETE SET NULL
) INHERITS (base_events) TABLESPACE fast;`)

	table := root.Child(0)
	assert.Equal(t, ddl.TypeCreateTable, table.Type())
	assert.Equal(t, "public.events", table.Name())
	assert.Equal(t, []string{"base_events"}, mustProperty(t, table, postgres.PropInherits))
	assert.Equal(t, "fast", table.FirstChildNamed("TABLESPACE").PropertyString(ddl.PropValue))

	cols := table.ChildrenOfType(ddl.TypeColumnDefinition)
	require.Len(t, cols, 5)
	assert.Equal(t, "BIGSERIAL", cols[0].PropertyString(ddl.PropDatatypeName))
	assert.Equal(t, "JSONB", cols[1].PropertyString(ddl.PropDatatypeName))
	assert.Equal(t, "'{}'::jsonb", cols[1].PropertyString(ddl.PropDefaultValue))
	assert.Equal(t, "NOT NULL", cols[1].PropertyString(ddl.PropNullable))
	assert.Equal(t, "TEXT[]", cols[2].PropertyString(ddl.PropDatatypeName))
	assert.Equal(t, "3", cols[3].PropertyString(ddl.PropDatatypePrec))
	assert.Equal(t, "now()", cols[3].PropertyString(ddl.PropDefaultValue))
	fk := cols[4].FirstChildNamed("foreign_key")
	require.NotNil(t, fk)
	assert.Equal(t, "SET NULL", fk.PropertyString(ddl.PropOnDelete))
}

func TestIndexesAndSequences(t *testing.T) {
	root := parse(t, `CREATE UNIQUE INDEX CONCURRENTLY IF NOT EXISTS events_payload_ix
  ON ONLY public.events USING gin (payload jsonb_path_ops) WHERE (payload IS NOT NULL);
CREATE INDEX ON events (lower(kind));
CREATE SEQUENCE IF NOT EXISTS events_seq AS bigint INCREMENT 5 MINVALUE 1 NO CYCLE OWNED BY events.id;
DROP INDEX CONCURRENTLY IF EXISTS events_payload_ix;`)
	require.Equal(t, 4, root.ChildCount())

	ix := root.Child(0)
	assert.Equal(t, postgres.TypeCreateIndex, ix.Type())
	assert.Equal(t, "events_payload_ix", ix.Name())
	assert.Equal(t, "UNIQUE", ix.PropertyString(ddl.PropIndexType))
	assert.True(t, ix.HasProperty(postgres.PropConcurrently))
	assert.True(t, ix.HasProperty(ddl.PropIfNotExists))
	assert.Equal(t, "public.events", ix.PropertyString(ddl.PropTableName))
	assert.Equal(t, "gin", ix.PropertyString(ddl.PropIndexMethod))
	assert.Equal(t, "payload jsonb_path_ops", ix.Child(0).Name())
	assert.Equal(t, "(payload IS NOT NULL)", ix.PropertyString(ddl.PropWhereClause))

	unnamed := root.Child(1)
	assert.Equal(t, "events", unnamed.Name(), "unnamed index is named after its table")
	assert.Equal(t, "lower(kind)", unnamed.Child(0).Name())

	seq := root.Child(2)
	assert.Equal(t, postgres.TypeCreateSequence, seq.Type())
	var opts []string
	for _, o := range seq.Children() {
		opts = append(opts, o.Name()+"="+o.PropertyString(ddl.PropValue))
	}
	assert.Equal(t, []string{"AS=bigint", "INCREMENT=5", "MINVALUE=1", "NO CYCLE=", "OWNED BY=events.id"}, opts)

	drop := root.Child(3)
	assert.Equal(t, postgres.TypeDropIndex, drop.Type())
	assert.True(t, drop.HasProperty(postgres.PropConcurrently))
	assert.True(t, drop.HasProperty(ddl.PropIfExists))
}

func TestExtensionsAndTypes(t *testing.T) {
	root := parse(t, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp" WITH SCHEMA extensions CASCADE;
CREATE TYPE mood AS ENUM ('sad', 'ok', 'happy');
CREATE TYPE pair AS (k TEXT, v JSONB);
DROP TYPE IF EXISTS mood CASCADE;
DROP EXTENSION "uuid-ossp";`)
	require.Equal(t, 5, root.ChildCount())

	ext := root.Child(0)
	assert.Equal(t, postgres.TypeCreateExtension, ext.Type())
	assert.Equal(t, "uuid-ossp", ext.Name())
	assert.Equal(t, "extensions", ext.FirstChildNamed("SCHEMA").PropertyString(ddl.PropValue))
	assert.NotNil(t, ext.FirstChildNamed("CASCADE"))

	mood := root.Child(1)
	assert.Equal(t, "ENUM", mood.PropertyString(postgres.PropTypeKind))
	var labels []string
	for _, l := range mood.ChildrenOfType(ddl.TypeEnumValue) {
		labels = append(labels, l.Name())
	}
	assert.Equal(t, []string{"sad", "ok", "happy"}, labels)

	pair := root.Child(2)
	assert.Equal(t, "COMPOSITE", pair.PropertyString(postgres.PropTypeKind))
	assert.Len(t, pair.ChildrenOfType(ddl.TypeColumnDefinition), 2)

	assert.Equal(t, postgres.TypeDropType, root.Child(3).Type())
	assert.Equal(t, "CASCADE", root.Child(3).PropertyString(ddl.PropDropBehavior))
	assert.Equal(t, postgres.TypeDropExtension, root.Child(4).Type())
}

func TestFunctionWithDollarQuotedBody(t *testing.T) {
	root := parse(t, `CREATE OR REPLACE FUNCTION touch_updated(IN tbl TEXT, VARIADIC ids INT[] DEFAULT NULL)
RETURNS SETOF events AS $body$
BEGIN
  UPDATE events SET updated = now() WHERE id = ANY(ids);
  RETURN QUERY SELECT * FROM events;
END;
$body$ LANGUAGE plpgsql VOLATILE SECURITY DEFINER;
DROP FUNCTION IF EXISTS touch_updated(TEXT, INT[]) CASCADE;`)
	require.Equal(t, 2, root.ChildCount())

	fn := root.Child(0)
	assert.Equal(t, postgres.TypeCreateFunction, fn.Type())
	assert.True(t, fn.HasProperty(ddl.PropOrReplace))
	assert.Equal(t, "SETOF events", fn.PropertyString(ddl.PropReturnType))
	assert.Equal(t, "plpgsql", fn.PropertyString(ddl.PropLanguage))
	assert.Contains(t, fn.PropertyString(ddl.PropBody), "RETURN QUERY SELECT * FROM events;")
	assert.NotNil(t, fn.FirstChildNamed("SECURITY DEFINER"))

	params := fn.ChildrenOfType(ddl.TypeParameter)
	require.Len(t, params, 2)
	assert.Equal(t, "tbl", params[0].Name())
	assert.Equal(t, "IN", params[0].PropertyString(ddl.PropParameterMode))
	assert.Equal(t, "VARIADIC", params[1].PropertyString(ddl.PropParameterMode))
	assert.Equal(t, "INT[]", params[1].PropertyString(ddl.PropDatatypeName))
	assert.Equal(t, "NULL", params[1].PropertyString(ddl.PropDefaultValue))

	drop := root.Child(1)
	assert.Equal(t, postgres.TypeDropFunction, drop.Type())
	assert.Equal(t, "touch_updated(TEXT, INT[])", drop.Name())
	assert.Equal(t, "CASCADE", drop.PropertyString(ddl.PropDropBehavior))
}

func TestAlterTableAndComments(t *testing.T) {
	root := parse(t, `ALTER TABLE events OWNER TO app_owner;
ALTER TABLE events RENAME COLUMN payload TO body;
ALTER TABLE events RENAME kind TO category;
ALTER TABLE events RENAME TO event_log;
ALTER TABLE event_log ALTER COLUMN body TYPE JSONB;
COMMENT ON TABLE event_log IS 'Append-only log';`)
	require.Equal(t, 6, root.ChildCount())

	assert.Equal(t, "app_owner", root.Child(0).PropertyString(ddl.PropOwner))

	for i, want := range []string{"body", "category"} {
		renames := root.Child(1 + i).ChildrenOfType(postgres.TypeRenameColumn)
		require.Len(t, renames, 1)
		assert.Equal(t, want, renames[0].PropertyString(ddl.PropNewName))
	}

	assert.Equal(t, "event_log", root.Child(3).PropertyString(ddl.PropNewName))

	alter := root.Child(4).ChildrenOfType(ddl.TypeAlterColumn)
	require.Len(t, alter, 1)
	assert.Equal(t, "JSONB", alter[0].PropertyString(ddl.PropDatatypeName))

	comment := root.Child(5)
	assert.Equal(t, postgres.TypeCommentOn, comment.Type())
	assert.Equal(t, "TABLE", comment.PropertyString(ddl.PropObjectType))
	assert.Equal(t, "Append-only log", comment.PropertyString(ddl.PropComment))
}

func mustProperty(t *testing.T, n *ddl.Node, name string) any {
	t.Helper()
	v, ok := n.Property(name)
	require.True(t, ok, name)
	return v
}
