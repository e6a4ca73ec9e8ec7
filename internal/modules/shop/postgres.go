package shop

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL shop repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateShop(ctx context.Context, s *Shop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shops (id, name, owner_name, phone, email, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.Name, s.OwnerName, s.Phone, s.Email, s.IsActive)
	return err
}

func (r *postgresRepo) GetShopByID(ctx context.Context, id string) (*Shop, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrShopNotFound
	}
	s := &Shop{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, owner_name, phone, email, is_active, created_at, updated_at
		FROM shops WHERE id=$1`, uid).
		Scan(&s.ID, &s.Name, &s.OwnerName, &s.Phone, &s.Email, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	return s, err
}

func (r *postgresRepo) ListShops(ctx context.Context, activeOnly bool) ([]*Shop, error) {
	query := `
		SELECT id, name, owner_name, phone, email, is_active, created_at, updated_at
		FROM shops`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shops []*Shop
	for rows.Next() {
		s := &Shop{}
		if err := rows.Scan(&s.ID, &s.Name, &s.OwnerName, &s.Phone, &s.Email,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}
