package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetCart(ctx context.Context, buyerID string) (*Cart, error) {
	uid, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, fmt.Errorf("invalid buyer id: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT cl.shop_id, cl.product_id, cl.color, cl.size, cl.quantity,
		       cl.title, cl.image, cl.unit_price_at_add,
		       o.discount_percentage, o.expires_at, cl.added_at
		FROM cart_lines cl
		LEFT JOIN offers o ON o.product_id = cl.product_id
		WHERE cl.buyer_id=$1
		ORDER BY cl.position ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &Cart{BuyerID: uid}
	for rows.Next() {
		l := Line{}
		var offerPct sql.NullFloat64
		var offerExpires sql.NullTime
		if err := rows.Scan(&l.ShopID, &l.ProductID, &l.Color, &l.Size, &l.Quantity,
			&l.Title, &l.Image, &l.UnitPriceAtAdd, &offerPct, &offerExpires, &l.AddedAt); err != nil {
			return nil, err
		}
		if offerPct.Valid && offerExpires.Valid {
			l.OfferSnapshot = &catalog.Offer{DiscountPercentage: offerPct.Float64, ExpiresAt: offerExpires.Time}
		}
		c.Lines = append(c.Lines, l)
	}
	return c, rows.Err()
}

func (r *postgresRepo) UpsertLine(ctx context.Context, buyerID string, line Line) error {
	uid, err := uuid.Parse(buyerID)
	if err != nil {
		return fmt.Errorf("invalid buyer id: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_lines
		  (buyer_id, shop_id, product_id, color, size, quantity, title, image, unit_price_at_add)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (buyer_id, product_id, color, size)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity,
		              title = EXCLUDED.title,
		              image = EXCLUDED.image,
		              unit_price_at_add = EXCLUDED.unit_price_at_add`,
		uid, line.ShopID, line.ProductID, line.Color, line.Size,
		line.Quantity, line.Title, line.Image, line.UnitPriceAtAdd)
	return err
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, buyerID, productID, color, size string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_lines SET quantity=$5
		WHERE buyer_id=$1 AND product_id=$2 AND color=$3 AND size=$4`,
		buyerID, productID, color, size, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveLine(ctx context.Context, buyerID, productID, color, size string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_lines
		WHERE buyer_id=$1 AND product_id=$2 AND color=$3 AND size=$4`,
		buyerID, productID, color, size)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, buyerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE buyer_id=$1`, buyerID)
	return err
}
