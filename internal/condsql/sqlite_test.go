package condsql

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tagfilter/internal/mapping"
	"github.com/roach88/tagfilter/internal/translate"
)

// openPeople opens an in-memory database seeded with a small people table.
func openPeople(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// One connection so every statement sees the same in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, db.Ping())

	_, err = db.Exec(`
		CREATE TABLE people (
			name    TEXT NOT NULL,
			age     INTEGER NOT NULL,
			city    TEXT,
			version REAL
		);
		INSERT INTO people (name, age, city, version) VALUES
			('Lou',    17, 'Paris',  NULL),
			('Louise', 34, 'Lyon',   1.9),
			('Ruby',   25, NULL,     1.9),
			('Max',    61, 'Berlin', 2.1);
	`)
	require.NoError(t, err)
	return db
}

// names runs the filter and returns matching names in name order.
func names(t *testing.T, db *sql.DB, where string, params []any) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM people WHERE "+where+" ORDER BY name", params...)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		out = append(out, name)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestSQLite_ExecutesCompiledFilters(t *testing.T) {
	db := openPeople(t)
	tr := translate.New(translate.Options{})
	c := NewCompiler(nil)

	testCases := []struct {
		name  string
		input *mapping.Mapping
		want  []string
	}{
		{
			name:  "implicit like and gt",
			input: mapping.New(mapping.E("name", "Lou%"), mapping.E("age.gt", 18)),
			want:  []string{"Louise"},
		},
		{
			name: "or group",
			input: mapping.New(mapping.E("OR", mapping.New(
				mapping.E("name.like", "Lou%"),
				mapping.E("age.gt", 50),
			))),
			want: []string{"Lou", "Louise", "Max"},
		},
		{
			name:  "in from string list",
			input: mapping.New(mapping.E("city.in", "Paris, Berlin")),
			want:  []string{"Lou", "Max"},
		},
		{
			name:  "in from slice",
			input: mapping.New(mapping.E("age.in", []any{25, 61})),
			want:  []string{"Max", "Ruby"},
		},
		{
			name:  "null",
			input: mapping.New(mapping.E("city.null", true)),
			want:  []string{"Ruby"},
		},
		{
			name:  "not null and ne",
			input: mapping.New(mapping.E("version.nnull", nil), mapping.E("name.ne", "Max")),
			want:  []string{"Louise", "Ruby"},
		},
		{
			name:  "implicit eq on number",
			input: mapping.New(mapping.E("version", 1.9), mapping.E("age.le", 30)),
			want:  []string{"Ruby"},
		},
		{
			name: "nested and inside or",
			input: mapping.New(mapping.E("OR", mapping.New(
				mapping.E("AND", mapping.New(
					mapping.E("name.like", "Lou%"),
					mapping.E("age.lt", 18),
				)),
				mapping.E("age.ge", 61),
			))),
			want: []string{"Lou", "Max"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := tr.Translate(tc.input)
			require.NoError(t, err)

			where, params, err := c.Compile(tree)
			require.NoError(t, err)
			require.Equal(t, CountPlaceholders(where), len(params))

			assert.Equal(t, tc.want, names(t, db, where, params))
		})
	}
}

func TestSQLite_InjectionIsInert(t *testing.T) {
	db := openPeople(t)

	tree, err := translate.New(translate.Options{}).Translate(
		mapping.New(mapping.E("name.eq", "x' OR '1'='1")),
	)
	require.NoError(t, err)

	where, params, err := NewCompiler(nil).Compile(tree)
	require.NoError(t, err)

	assert.Empty(t, names(t, db, where, params))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM people").Scan(&count))
	assert.Equal(t, 4, count)
}

func TestSQLite_ColumnMapping(t *testing.T) {
	db := openPeople(t)

	tree, err := translate.New(translate.Options{}).Translate(
		mapping.New(mapping.E("years.gt", 30)),
	)
	require.NoError(t, err)

	where, params, err := NewCompiler(&Options{ColumnMapping: map[string]string{"years": "age"}}).Compile(tree)
	require.NoError(t, err)
	assert.Equal(t, "(age>?)", where)
	assert.Equal(t, []string{"Louise", "Max"}, names(t, db, where, params))
}
