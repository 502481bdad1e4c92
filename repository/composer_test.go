package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryComposerNoConditions(t *testing.T) {
	query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").SQL()

	assert.Equal(t, "SELECT * FROM assets WHERE 1=1", query)
	assert.Empty(t, args)
}

func TestQueryComposerEqual(t *testing.T) {
	t.Run("non-empty value binds a parameter", func(t *testing.T) {
		query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
			Equal("status", "available").
			SQL()

		assert.Equal(t, "SELECT * FROM assets WHERE 1=1 AND status = ?", query)
		assert.Equal(t, []any{"available"}, args)
	})

	t.Run("empty value contributes nothing", func(t *testing.T) {
		query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
			Equal("status", "").
			SQL()

		assert.Equal(t, "SELECT * FROM assets WHERE 1=1", query)
		assert.Empty(t, args)
	})
}

func TestQueryComposerEqualID(t *testing.T) {
	t.Run("non-zero id binds a parameter", func(t *testing.T) {
		query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
			EqualID("category_id", 7).
			SQL()

		assert.Equal(t, "SELECT * FROM assets WHERE 1=1 AND category_id = ?", query)
		assert.Equal(t, []any{uint(7)}, args)
	})

	t.Run("zero id means no constraint", func(t *testing.T) {
		query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
			EqualID("category_id", 0).
			SQL()

		assert.Equal(t, "SELECT * FROM assets WHERE 1=1", query)
		assert.Empty(t, args)
	})
}

func TestQueryComposerSearchExpandsPerColumn(t *testing.T) {
	query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
		Search("projector", "asset_name", "asset_code", "serial_number").
		SQL()

	assert.Equal(t,
		"SELECT * FROM assets WHERE 1=1 AND (asset_name LIKE ? OR asset_code LIKE ? OR serial_number LIKE ?)",
		query)
	require.Len(t, args, 3)
	for _, arg := range args {
		assert.Equal(t, "%projector%", arg)
	}
}

func TestQueryComposerHostileInputStaysBound(t *testing.T) {
	hostile := "'; DROP TABLE assets; --"

	query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
		Search(hostile, "asset_name").
		Equal("status", hostile).
		SQL()

	// The hostile text must only ever appear in the argument list,
	// never in the rendered SQL.
	assert.NotContains(t, query, "DROP TABLE")
	require.Len(t, args, 2)
	assert.Equal(t, "%"+hostile+"%", args[0])
	assert.Equal(t, hostile, args[1])
}

func TestQueryComposerDateBounds(t *testing.T) {
	query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
		AtLeast("purchase_date", "2024-01-01").
		AtMost("purchase_date", "2024-12-31").
		SQL()

	assert.Equal(t,
		"SELECT * FROM assets WHERE 1=1 AND purchase_date >= ? AND purchase_date <= ?",
		query)
	assert.Equal(t, []any{"2024-01-01", "2024-12-31"}, args)
}

func TestQueryComposerDeclarationOrder(t *testing.T) {
	query, args := NewQueryComposer("SELECT * FROM assets WHERE 1=1").
		Search("hp", "asset_name", "asset_code").
		EqualID("category_id", 3).
		Equal("status", "in_use").
		AtLeast("purchase_date", "2023-06-01").
		OrderBy("purchase_date DESC").
		Limit(50).
		SQL()

	assert.Equal(t,
		"SELECT * FROM assets WHERE 1=1 AND (asset_name LIKE ? OR asset_code LIKE ?)"+
			" AND category_id = ? AND status = ? AND purchase_date >= ?"+
			" ORDER BY purchase_date DESC LIMIT 50",
		query)
	assert.Equal(t, []any{"%hp%", "%hp%", uint(3), "in_use", "2023-06-01"}, args)
}

func TestQueryComposerLimitIgnoredWhenZero(t *testing.T) {
	query, _ := NewQueryComposer("SELECT * FROM maintenance_records WHERE 1=1").
		OrderBy("maintenance_date DESC").
		Limit(0).
		SQL()

	assert.NotContains(t, query, "LIMIT")
}
