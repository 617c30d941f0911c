package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE inventory (id INTEGER PRIMARY KEY, name TEXT, stock INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "inventory")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["id"].Type)
	assert.Equal(t, "PRI", colMap["id"].Key)
	assert.Equal(t, "text", colMap["name"].Type)
	assert.Equal(t, "integer", colMap["stock"].Type)

	// PRAGMA table_info returns an empty result for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE inventory (id INTEGER PRIMARY KEY, name TEXT)").Error)

	t.Run("ReportsMissing", func(t *testing.T) {
		missing, err := MissingColumns(db, "inventory", "id", "stock")
		require.NoError(t, err)
		assert.Equal(t, []string{"stock"}, missing)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		missing, err := MissingColumns(db, "inventory", "ID", "Name")
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("MissingTable", func(t *testing.T) {
		missing, err := MissingColumns(db, "nope", "id")
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, missing)
	})
}
