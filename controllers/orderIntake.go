package controllers

import (
	"time"

	"go-restaurant-operations/helpers"
	"go-restaurant-operations/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validateOrderRequest covers payload shape only: non-empty items, quantity
// bounds and note lengths. Everything past that (table, menu, quota, role)
// has its own failure mode.
func validateOrderRequest(req models.CreateOrderRequest) *helpers.AppError {
	if err := validate.Struct(&req); err != nil {
		return helpers.NewAppError(helpers.ErrValidation, err.Error())
	}
	return nil
}

// tableAvailable decides whether a table may take new intake on the given
// channel. Only the public channel requires the enabled flag; staff may ring
// in orders for a disabled table.
func tableAvailable(table *models.Table, publicChannel bool) *helpers.AppError {
	if !publicChannel {
		return nil
	}
	if table.Is_enabled == nil || !*table.Is_enabled {
		return helpers.NewAppError(helpers.ErrConflict, "table not available")
	}
	return nil
}

func distinctMenuItemIDs(inputs []models.OrderItemInput) []string {
	seen := make(map[string]bool, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !seen[in.Menu_item_id] {
			seen[in.Menu_item_id] = true
			ids = append(ids, in.Menu_item_id)
		}
	}
	return ids
}

// resolveOrderItems snapshots the requested lines against the fetched menu.
// menuItems must already be filtered to the organization's active items; any
// requested id without a match rejects the whole order, never a partial one.
// The returned lines copy name and price, so later menu edits cannot reach
// them.
func resolveOrderItems(inputs []models.OrderItemInput, menuItems []models.MenuItem) ([]models.OrderItem, int64, *helpers.AppError) {
	byID := make(map[string]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.Menu_item_id] = mi
	}

	now := time.Now().UTC()
	items := make([]models.OrderItem, 0, len(inputs))
	var total int64
	for _, in := range inputs {
		mi, ok := byID[in.Menu_item_id]
		if !ok {
			return nil, 0, helpers.NewAppError(helpers.ErrValidation, "items unavailable")
		}
		menuItemId := mi.Menu_item_id
		item := models.OrderItem{
			ID:           primitive.NewObjectID(),
			Menu_item_id: &menuItemId,
			Name:         *mi.Name,
			Unit_price:   *mi.Price,
			Quantity:     in.Quantity,
			Total:        *mi.Price * in.Quantity,
			Notes:        in.Notes,
			Created_at:   now,
		}
		item.Order_item_id = item.ID.Hex()
		items = append(items, item)
		total += item.Total
	}
	return items, total, nil
}
