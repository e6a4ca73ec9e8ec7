package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the order and all its lines inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, order_number, shop_id, buyer_id, buyer_name, buyer_phone,
		   delivery_location, total_price, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.OrderNumber, o.ShopID, o.BuyerID, o.BuyerName, o.BuyerPhone,
		o.DeliveryLocation, o.TotalPrice, o.Status)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, line := range o.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines
			  (order_id, position, product_id, title, image, unit_price, quantity, color, size)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			o.ID, i, line.ProductID, line.Title, line.Image,
			line.UnitPrice, line.Quantity, line.Color, line.Size)
		if err != nil {
			return fmt.Errorf("insert order_line: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT id, order_number, shop_id, buyer_id, buyer_name, buyer_phone,
		       delivery_location, total_price, status, created_at,
		       delivered_to_admin_at, delivered_at
		FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Lines, err = r.listLines(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID string, status Status) ([]*Order, error) {
	query := `
		SELECT id, order_number, shop_id, buyer_id, buyer_name, buyer_phone,
		       delivery_location, total_price, status, created_at,
		       delivered_to_admin_at, delivered_at
		FROM orders WHERE shop_id=$1`
	args := []interface{}{shopID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, order_number, shop_id, buyer_id, buyer_name, buyer_phone,
		       delivery_location, total_price, status, created_at,
		       delivered_to_admin_at, delivered_at
		FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	query := `UPDATE orders SET status=$1`
	switch to {
	case StatusDeliveredToAdmin:
		query += `, delivered_to_admin_at=$4`
	case StatusDelivered:
		query += `, delivered_at=$4`
	}
	args := []interface{}{to, id, from}
	if to == StatusDeliveredToAdmin || to == StatusDelivered {
		args = append(args, at)
	}
	// The status predicate makes the transition atomic: a row that moved
	// on since the caller's read matches nothing.
	query += ` WHERE id=$2 AND status=$3`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrOrderNotFound
		}
		return ErrStatusConflict
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func scanOrder(row *sql.Row) (*Order, error) {
	o := &Order{}
	var toAdmin, delivered sql.NullTime
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.ShopID, &o.BuyerID, &o.BuyerName, &o.BuyerPhone,
		&o.DeliveryLocation, &o.TotalPrice, &o.Status, &o.CreatedAt,
		&toAdmin, &delivered)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if toAdmin.Valid {
		o.DeliveredToAdminAt = &toAdmin.Time
	}
	if delivered.Valid {
		o.DeliveredAt = &delivered.Time
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		var toAdmin, delivered sql.NullTime
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.ShopID, &o.BuyerID, &o.BuyerName, &o.BuyerPhone,
			&o.DeliveryLocation, &o.TotalPrice, &o.Status, &o.CreatedAt,
			&toAdmin, &delivered); err != nil {
			return nil, err
		}
		if toAdmin.Valid {
			o.DeliveredToAdminAt = &toAdmin.Time
		}
		if delivered.Valid {
			o.DeliveredAt = &delivered.Time
		}
		if o.Lines, err = r.listLines(ctx, o.ID); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) listLines(ctx context.Context, orderID uuid.UUID) ([]Line, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, title, image, unit_price, quantity, color, size
		FROM order_lines WHERE order_id=$1 ORDER BY position ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Line
	for rows.Next() {
		l := Line{}
		if err := rows.Scan(&l.ProductID, &l.Title, &l.Image, &l.UnitPrice,
			&l.Quantity, &l.Color, &l.Size); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
