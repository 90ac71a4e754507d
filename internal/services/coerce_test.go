package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricing-backend/internal/registry"
	"pricing-backend/internal/repositories"
)

func TestCoerceValueByType(t *testing.T) {
	decimal := registry.ColumnConfig{Key: "v", Label: "Value", Type: registry.TypeDecimal}
	integer := registry.ColumnConfig{Key: "v", Label: "Count", Type: registry.TypeInteger}
	boolean := registry.ColumnConfig{Key: "v", Label: "Flag", Type: registry.TypeBoolean}
	date := registry.ColumnConfig{Key: "v", Label: "When", Type: registry.TypeDate}

	v, err := coerceValue(decimal, "12.5000")
	require.NoError(t, err)
	assert.Equal(t, "12.5000", v)

	v, err = coerceValue(decimal, float64(3))
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = coerceValue(decimal, "abc")
	assert.Error(t, err)

	v, err = coerceValue(integer, float64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = coerceValue(integer, 7.5)
	assert.Error(t, err)

	v, err = coerceValue(boolean, true)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = coerceValue(boolean, "false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = coerceValue(date, "2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-25", v)

	_, err = coerceValue(date, "08/25/2026")
	assert.Error(t, err)

	v, err = coerceValue(date, "")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCoerceValueJSON(t *testing.T) {
	col := registry.ColumnConfig{Key: "specs", Label: "Specs", Type: registry.TypeJSON}
	v, err := coerceValue(col, map[string]any{"ip_rating": "IP68"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip_rating":"IP68"}`, v.(string))
}

func TestShapeRow(t *testing.T) {
	tc, ok := registry.Default.Table("led_modules")
	require.True(t, ok)

	shaped := shapeRow(tc, repositories.Row{
		"id":              int32(9),
		"part_number":     "LED-3W",
		"watts":           "3",
		"cost_per_module": "1.2",
		"specs":           `{"ip_rating":"IP68"}`,
		"is_active":       true,
	})

	assert.Equal(t, int64(9), shaped["id"])
	assert.Equal(t, "3.00", shaped["watts"])
	assert.Equal(t, "1.2000", shaped["cost_per_module"])
	assert.Equal(t, json.RawMessage(`{"ip_rating":"IP68"}`), shaped["specs"])
	assert.Equal(t, true, shaped["is_active"])
}
