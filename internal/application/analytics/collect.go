package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-analytics/internal/domain"
	"github.com/jhoicas/inventario-analytics/internal/domain/entity"
	"github.com/jhoicas/inventario-analytics/internal/domain/repository"
	"github.com/jhoicas/inventario-analytics/pkg/paginate"
)

// collector recorre las fuentes paginadas de un producto hasta el final.
// Lo comparten el caso de uso de métricas y el de exportación.
type collector struct {
	sales     repository.SalesRepository
	purchases repository.PurchaseRepository
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	pageSize  int
	log       zerolog.Logger
}

// stock lee el producto; inexistente → domain.ErrNotFound.
func (c *collector) stock(ctx context.Context, productID string) (*entity.ProductStock, error) {
	st, err := c.products.GetStock(ctx, productID)
	if err != nil {
		return nil, upstream("producto", productID, err)
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (c *collector) saleItems(ctx context.Context, productID string) ([]entity.LineItem, error) {
	start := time.Now()
	items, err := paginate.CollectAll(ctx, paginate.ForProduct(productID, c.sales.PageSaleItems), c.pageSize)
	if err != nil {
		return nil, upstream("ventas", productID, err)
	}
	stampProduct(items, productID)
	c.log.Debug().Str("product_id", productID).Int("items", len(items)).
		Dur("elapsed", time.Since(start)).Msg("ítems de venta recolectados")
	return items, nil
}

func (c *collector) purchaseItems(ctx context.Context, productID string) ([]entity.LineItem, error) {
	start := time.Now()
	items, err := paginate.CollectAll(ctx, paginate.ForProduct(productID, c.purchases.PagePurchaseItems), c.pageSize)
	if err != nil {
		return nil, upstream("compras", productID, err)
	}
	stampProduct(items, productID)
	c.log.Debug().Str("product_id", productID).Int("items", len(items)).
		Dur("elapsed", time.Since(start)).Msg("ítems de compra recolectados")
	return items, nil
}

func (c *collector) stockMovements(ctx context.Context, productID string) ([]entity.StockMovement, error) {
	items, err := paginate.CollectAll(ctx, paginate.ForProduct(productID, c.movements.PageMovements), c.pageSize)
	if err != nil {
		return nil, upstream("movimientos", productID, err)
	}
	return items, nil
}

// both recolecta ventas y compras en paralelo; cada colección sigue siendo secuencial.
// Si una falla se cancela la otra.
func (c *collector) both(ctx context.Context, productID string) (sales, purchases []entity.LineItem, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = c.saleItems(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = c.purchaseItems(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sales, purchases, nil
}

// upstream conserva la cancelación del llamador como tal; cualquier otra falla es de la fuente.
func upstream(what, productID string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("analytics: %s de %s: %w", what, productID, err)
	}
	return fmt.Errorf("%w: %s de %s: %w", domain.ErrUpstream, what, productID, err)
}

// stampProduct asegura que los ítems recolectados para un producto lleven su ID.
func stampProduct(items []entity.LineItem, productID string) {
	for i := range items {
		items[i].ProductID = productID
	}
}
