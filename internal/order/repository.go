package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, scope Scope) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateTx inserts the order row, its item rows, and the stock adjustments in
// one transaction. A failing item insert or an out-of-stock line rolls the
// whole order back; partial orders never persist.
func (r *repository) CreateTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateTx"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
	)

	log.Debug("starting order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, customer_name, seller_id, seller_name,
			total, status, shipping_address, phone, payment_method
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID, o.CustomerID, o.CustomerName, o.SellerID, o.SellerName,
		o.Total, o.Status, o.ShippingAddress, o.Phone, o.PaymentMethod,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, name, name_ar, image_url, price, quantity
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			o.ID, item.ProductID, item.Name, item.NameAr,
			item.Image, item.Price, item.Quantity,
		)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1,
			    purchase_count = purchase_count + $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			return err
		}

		affected, _ := res.RowsAffected()
		if affected == 0 {
			log.Warn("insufficient stock",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
			)
			return ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}
	committed = true

	log.Info("order transaction committed")
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, seller_id, seller_name,
		       total, status, shipping_address, phone, payment_method,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.SellerID, &o.SellerName,
		&o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, name_ar, image_url, price, quantity
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ProductID, &item.Name, &item.NameAr,
			&item.Image, &item.Price, &item.Quantity,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

// List filters by the caller's scope inside the query so other tenants' rows
// never leave the database.
func (r *repository) List(ctx context.Context, scope Scope) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where := []string{"1=1"}
	args := []any{}

	if scope.CustomerID != "" {
		args = append(args, scope.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if scope.SellerID != "" {
		args = append(args, scope.SellerID)
		where = append(where, fmt.Sprintf("seller_id = $%d", len(args)))
	}

	query := `
		SELECT id, customer_id, customer_name, seller_id, seller_name,
		       total, status, shipping_address, phone, payment_method,
		       created_at, updated_at
		FROM orders
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.SellerID, &o.SellerName,
			&o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.PaymentMethod,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("orders listed", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
