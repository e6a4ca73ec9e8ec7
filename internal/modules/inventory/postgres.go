package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetStock(ctx context.Context, productID, color, size string) (*StockLevel, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	s := &StockLevel{}
	err = r.db.QueryRowContext(ctx, `
		SELECT product_id, color, size, stock, updated_at
		FROM size_stocks WHERE product_id=$1 AND color=$2 AND size=$3`,
		uid, color, size).
		Scan(&s.ProductID, &s.Color, &s.Size, &s.Stock, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStockNotFound
	}
	return s, err
}

// Reserve relies on a single conditional UPDATE for atomicity: the row
// lock taken by the UPDATE serializes concurrent reservations for the
// same variant, and the stock >= qty predicate guarantees the stock
// never goes negative. Zero affected rows means the predicate failed
// (shortfall) or the row does not exist; a follow-up read distinguishes
// the two for diagnostics.
func (r *postgresRepo) Reserve(ctx context.Context, productID, color, size string, qty int) (*Reservation, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	var remaining int
	err = r.db.QueryRowContext(ctx, `
		UPDATE size_stocks
		SET stock = stock - $4, updated_at = now()
		WHERE product_id=$1 AND color=$2 AND size=$3 AND stock >= $4
		RETURNING stock`,
		uid, color, size, qty).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		var available int
		err = r.db.QueryRowContext(ctx, `
			SELECT stock FROM size_stocks
			WHERE product_id=$1 AND color=$2 AND size=$3`,
			uid, color, size).Scan(&available)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStockNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("read available stock: %w", err)
		}
		return nil, &InsufficientStockError{Requested: qty, Available: available}
	}
	if err != nil {
		return nil, fmt.Errorf("reserve stock: %w", err)
	}

	return &Reservation{
		ProductID:   uid,
		Color:       color,
		Size:        size,
		Quantity:    qty,
		Remaining:   remaining,
		JustSoldOut: remaining == 0,
	}, nil
}

func (r *postgresRepo) Restock(ctx context.Context, productID, color, size string, qty int) (*StockLevel, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	s := &StockLevel{}
	err = r.db.QueryRowContext(ctx, `
		UPDATE size_stocks
		SET stock = stock + $4, updated_at = now()
		WHERE product_id=$1 AND color=$2 AND size=$3
		RETURNING product_id, color, size, stock, updated_at`,
		uid, color, size, qty).
		Scan(&s.ProductID, &s.Color, &s.Size, &s.Stock, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStockNotFound
	}
	return s, err
}
