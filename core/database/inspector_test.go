package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Exec("CREATE TABLE filters (id INTEGER PRIMARY KEY, filter_id TEXT, filter_name TEXT, item_count INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "filters")
	assert.NoError(t, err)
	assert.Len(t, columns, 4)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["filter_id"])
	assert.Equal(t, "text", colMap["filter_name"])
	assert.Equal(t, "integer", colMap["item_count"])

	// PRAGMA table_info yields an empty result for a missing table, not an error
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestListTables(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE matching_summaries (id INTEGER PRIMARY KEY)").Error)

	tables, err := ListTables(db)
	assert.NoError(t, err)
	assert.Contains(t, tables, "matching_summaries")
}
