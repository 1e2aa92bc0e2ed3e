package backendapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// PageSaleItems GET /products/{id}/sale-items.
func (c *Client) PageSaleItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	env, err := c.getPage(ctx, "sale-items", productID, page, perPage)
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("backendapi.PageSaleItems: %w", err)
	}
	items := make([]entity.LineItem, 0, len(env.Data))
	for _, rec := range env.Data {
		items = append(items, lineItemFromRecord(rec, productID, saleShape))
	}
	return paginate.Page[entity.LineItem]{Data: items, Meta: env.Meta}, nil
}

// PagePurchaseItems GET /products/{id}/purchase-items.
func (c *Client) PagePurchaseItems(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.LineItem], error) {
	env, err := c.getPage(ctx, "purchase-items", productID, page, perPage)
	if err != nil {
		return paginate.Page[entity.LineItem]{}, fmt.Errorf("backendapi.PagePurchaseItems: %w", err)
	}
	items := make([]entity.LineItem, 0, len(env.Data))
	for _, rec := range env.Data {
		items = append(items, lineItemFromRecord(rec, productID, purchaseShape))
	}
	return paginate.Page[entity.LineItem]{Data: items, Meta: env.Meta}, nil
}

// PageMovements GET /products/{id}/stock-movements.
func (c *Client) PageMovements(ctx context.Context, productID string, page, perPage int) (paginate.Page[entity.StockMovement], error) {
	env, err := c.getPage(ctx, "stock-movements", productID, page, perPage)
	if err != nil {
		return paginate.Page[entity.StockMovement]{}, fmt.Errorf("backendapi.PageMovements: %w", err)
	}
	list := make([]entity.StockMovement, 0, len(env.Data))
	for _, rec := range env.Data {
		list = append(list, movementFromRecord(rec, productID))
	}
	return paginate.Page[entity.StockMovement]{Data: list, Meta: env.Meta}, nil
}

// GetStock GET /products/{id}. Un 404 se interpreta como producto inexistente.
func (c *Client) GetStock(ctx context.Context, productID string) (*entity.ProductStock, error) {
	var body map[string]any
	err := c.getJSON(ctx, "/products/"+url.PathEscape(productID), nil, &body)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("backendapi.GetStock: %w", err)
	}
	if data, ok := body["data"].(map[string]any); ok {
		body = data
	}
	st := productFromRecord(body, productID)
	return &st, nil
}
