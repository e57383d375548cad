package db

import (
	"context"
	"database/sql"
	"errors"

	"ticket-store/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- ORDERS ----------------

func (d *DB) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := d.Bun.NewInsert().Model(order).Exec(ctx)
	return err
}

// GetOrderByID fetches one order by its primary key.
func (d *DB) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("id_orders = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder writes the given columns of an order. Callers list exactly the
// columns they changed; updated_at is always included.
func (d *DB) UpdateOrder(ctx context.Context, order *models.Order, columns ...string) error {
	columns = append(columns, "updated_at")
	_, err := d.Bun.NewUpdate().
		Model(order).
		Column(columns...).
		Where("id_orders = ?", order.ID).
		Exec(ctx)
	return err
}

// ---------------- ORDER ITEMS ----------------

// GetOrderItems returns the published items of an order.
func (d *DB) GetOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := d.Bun.NewSelect().
		Model(&items).
		Where("id_orders = ?", orderID).
		Where("record_status = ?", models.RecordPublished).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	return items, nil
}

func (d *DB) GetOrderItemByID(ctx context.Context, id string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := d.Bun.NewSelect().
		Model(&item).
		Where("id_order_items = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *DB) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	_, err := d.Bun.NewInsert().Model(item).Exec(ctx)
	return err
}

func (d *DB) UpdateOrderItem(ctx context.Context, item *models.OrderItem, columns ...string) error {
	columns = append(columns, "updated_at")
	_, err := d.Bun.NewUpdate().
		Model(item).
		Column(columns...).
		Where("id_order_items = ?", item.ID).
		Exec(ctx)
	return err
}

func (d *DB) DeleteOrderItem(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.OrderItem)(nil)).
		Where("id_order_items = ?", id).
		Exec(ctx)
	return err
}

// DeleteOrderItems removes all published items of an order.
func (d *DB) DeleteOrderItems(ctx context.Context, orderID string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.OrderItem)(nil)).
		Where("id_orders = ?", orderID).
		Where("record_status = ?", models.RecordPublished).
		Exec(ctx)
	return err
}

// ReplaceOrderItems swaps the full published item set of an order inside one
// transaction. Concurrent syncs on the same order still race each other
// (last write wins), but a reader never observes a half-written set.
func (d *DB) ReplaceOrderItems(ctx context.Context, orderID string, items []models.OrderItem) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*models.OrderItem)(nil)).
			Where("id_orders = ?", orderID).
			Where("record_status = ?", models.RecordPublished).
			Exec(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		_, err = tx.NewInsert().Model(&items).Exec(ctx)
		return err
	})
}

// ---------------- COUPONS ----------------

// GetCouponByCode returns the published coupon for a code, nil when absent.
func (d *DB) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := d.Bun.NewSelect().
		Model(&coupon).
		Where("coupon_code_name = ?", code).
		Where("record_status = ?", models.RecordPublished).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (d *DB) GetCouponByID(ctx context.Context, id string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := d.Bun.NewSelect().
		Model(&coupon).
		Where("id_coupons = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListCoupons returns published coupons ordered by rank.
func (d *DB) ListCoupons(ctx context.Context, filter models.CouponFilter) ([]models.Coupon, error) {
	var coupons []models.Coupon
	q := d.Bun.NewSelect().
		Model(&coupons).
		Where("record_status = ?", models.RecordPublished)

	if filter.IsPublic {
		q = q.Where("is_public = ?", true)
	}
	if filter.IsActive {
		q = q.Where("is_active = ?", true)
	}
	if filter.WithSale {
		q = q.Where("sale_label IS NOT NULL AND sale_label != ''").
			Where("sale_shortdesc IS NOT NULL AND sale_shortdesc != ''")
	}

	if err := q.Order("rank_record ASC").Scan(ctx); err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	return coupons, nil
}

// GetCouponProducts returns the published scope rows of a coupon.
func (d *DB) GetCouponProducts(ctx context.Context, couponID string) ([]models.CouponProduct, error) {
	var scope []models.CouponProduct
	err := d.Bun.NewSelect().
		Model(&scope).
		Where("id_coupons = ?", couponID).
		Where("record_status = ?", models.RecordPublished).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return scope, nil
}

// ---------------- PRODUCTS ----------------

func (d *DB) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := d.Bun.NewSelect().
		Model(&product).
		Where("id_products = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns the published products of one event, cheapest first.
func (d *DB) ListProducts(ctx context.Context, eventID string) ([]models.Product, error) {
	var products []models.Product
	err := d.Bun.NewSelect().
		Model(&products).
		Where("id_events = ?", eventID).
		Where("record_status = ?", models.RecordPublished).
		Order("price ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// ---------------- CUSTOMERS ----------------

func (d *DB) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := d.Bun.NewSelect().
		Model(&customer).
		Where("id_customers = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
