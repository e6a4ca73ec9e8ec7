package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	p := &Product{}
	var offerPct sql.NullFloat64
	var offerExpires sql.NullTime
	err = r.db.QueryRowContext(ctx, `
		SELECT p.id, p.shop_id, p.title, p.description, p.price, p.currency, p.image,
		       p.is_active, p.created_at, p.updated_at,
		       o.discount_percentage, o.expires_at
		FROM products p
		LEFT JOIN offers o ON o.product_id = p.id
		WHERE p.id=$1`, uid).
		Scan(&p.ID, &p.ShopID, &p.Title, &p.Description, &p.Price, &p.Currency, &p.Image,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &offerPct, &offerExpires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if offerPct.Valid && offerExpires.Valid {
		p.Offer = &Offer{DiscountPercentage: offerPct.Float64, ExpiresAt: offerExpires.Time}
	}
	p.Colors, err = r.listColors(ctx, p.ID)
	return p, err
}

func (r *postgresRepo) ListShopProducts(ctx context.Context, shopID string) ([]*Product, error) {
	uid, err := uuid.Parse(shopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop id: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.shop_id, p.title, p.description, p.price, p.currency, p.image,
		       p.is_active, p.created_at, p.updated_at,
		       o.discount_percentage, o.expires_at
		FROM products p
		LEFT JOIN offers o ON o.product_id = p.id
		WHERE p.shop_id=$1 AND p.is_active
		ORDER BY p.created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p := &Product{}
		var offerPct sql.NullFloat64
		var offerExpires sql.NullTime
		if err := rows.Scan(&p.ID, &p.ShopID, &p.Title, &p.Description, &p.Price, &p.Currency,
			&p.Image, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &offerPct, &offerExpires); err != nil {
			return nil, err
		}
		if offerPct.Valid && offerExpires.Valid {
			p.Offer = &Offer{DiscountPercentage: offerPct.Float64, ExpiresAt: offerExpires.Time}
		}
		if p.Colors, err = r.listColors(ctx, p.ID); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) ResolveLine(ctx context.Context, productID, color, size string) (*ResolvedLine, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	line := &ResolvedLine{}
	var offerPct sql.NullFloat64
	var offerExpires sql.NullTime
	err = r.db.QueryRowContext(ctx, `
		SELECT p.id, p.shop_id, p.title, p.image, p.price, s.stock,
		       o.discount_percentage, o.expires_at
		FROM products p
		JOIN size_stocks s ON s.product_id = p.id AND s.color=$2 AND s.size=$3
		LEFT JOIN offers o ON o.product_id = p.id
		WHERE p.id=$1 AND p.is_active`, uid, color, size).
		Scan(&line.ProductID, &line.ShopID, &line.Title, &line.Image, &line.UnitPrice,
			&line.Stock, &offerPct, &offerExpires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if offerPct.Valid && offerExpires.Valid {
		line.Offer = &Offer{DiscountPercentage: offerPct.Float64, ExpiresAt: offerExpires.Time}
	}
	return line, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) listColors(ctx context.Context, productID uuid.UUID) ([]ColorVariant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, preview_image, images
		FROM product_colors WHERE product_id=$1 ORDER BY position ASC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var colors []ColorVariant
	for rows.Next() {
		c := ColorVariant{}
		if err := rows.Scan(&c.Name, &c.PreviewImage, pq.Array(&c.Images)); err != nil {
			return nil, err
		}
		if c.Sizes, err = r.listSizes(ctx, productID, c.Name); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (r *postgresRepo) listSizes(ctx context.Context, productID uuid.UUID, color string) ([]SizeStock, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT size, stock FROM size_stocks
		WHERE product_id=$1 AND color=$2 ORDER BY size ASC`, productID, color)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sizes []SizeStock
	for rows.Next() {
		s := SizeStock{}
		if err := rows.Scan(&s.Size, &s.Stock); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}
