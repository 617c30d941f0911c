package document

import (
	"errors"
	"fmt"

	"inventory-sync/core/index"
	"inventory-sync/feature/inventory/models"
)

// ErrMissingID is returned for records without a usable identity.
var ErrMissingID = errors.New("record has no id")

// Encode converts an inventory item into its index document.
// Integers stay integers and strings stay strings in the serialized body.
func Encode(item models.Item) (index.Document, error) {
	if item.ID <= 0 {
		return index.Document{}, fmt.Errorf("encode item %d: %w", item.ID, ErrMissingID)
	}

	return index.Document{
		ID: item.ID,
		Fields: map[string]any{
			"id":    item.ID,
			"name":  item.Name,
			"sku":   item.SKU,
			"stock": item.Stock,
		},
	}, nil
}
