package document

import (
	"encoding/json"
	"testing"

	"inventory-sync/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Run("AllFields", func(t *testing.T) {
		doc, err := Encode(models.Item{ID: 42, Name: "widget", SKU: "W-1", Stock: 10})
		require.NoError(t, err)

		assert.Equal(t, int64(42), doc.ID)
		assert.Equal(t, map[string]any{"id": int64(42), "name": "widget", "sku": "W-1", "stock": 10}, doc.Fields)
	})

	t.Run("NativeJSONTypes", func(t *testing.T) {
		doc, err := Encode(models.Item{ID: 7, Name: "bolt", Stock: -2})
		require.NoError(t, err)

		raw, err := json.Marshal(doc.Fields)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":7,"name":"bolt","sku":"","stock":-2}`, string(raw))
	})

	t.Run("StableID", func(t *testing.T) {
		a, _ := Encode(models.Item{ID: 3, Stock: 1})
		b, _ := Encode(models.Item{ID: 3, Stock: 99})
		assert.Equal(t, a.ID, b.ID)
	})

	t.Run("MissingID", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := Encode(models.Item{ID: id})
			assert.ErrorIs(t, err, ErrMissingID)
		}
	})
}
