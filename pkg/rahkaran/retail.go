package rahkaran

import (
	"context"
	"net/http"
)

// GetRetailShops lists the retail shops.
func (c *Client) GetRetailShops(ctx context.Context) (RecordSet, error) {
	return c.CallList(ctx, http.MethodGet, c.endpoints.RetailShops, nil, nil)
}

// GetRetailProducts lists the products of a store.
func (c *Client) GetRetailProducts(ctx context.Context, storeID int64) (RecordSet, error) {
	return c.CallList(ctx, http.MethodPost, c.endpoints.RetailProducts, nil, map[string]any{
		"storeId": storeID,
	})
}

// GetRetailRemaining returns the remaining stock of a product in a store.
func (c *Client) GetRetailRemaining(ctx context.Context, storeID, productID int64) (Record, error) {
	return c.Call(ctx, http.MethodPost, c.endpoints.RetailRemaining, nil, map[string]any{
		"storeId":   storeID,
		"productId": productID,
	})
}

// GetRetailPrice returns the price of an item in a store.
func (c *Client) GetRetailPrice(ctx context.Context, storeID, itemID int64) (Record, error) {
	return c.Call(ctx, http.MethodPost, c.endpoints.RetailPrice, nil, map[string]any{
		"storeId": storeID,
		"itemId":  itemID,
	})
}
