package buyer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL buyer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateBuyer(ctx context.Context, b *Buyer) error {
	query := `
		INSERT INTO buyers (id, name, phone, email, delivery_location)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.Phone, b.Email, b.DeliveryLocation)
	return err
}

func (r *postgresRepository) GetBuyerByID(ctx context.Context, id string) (*Buyer, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBuyerNotFound
	}
	b := &Buyer{}
	query := `
		SELECT id, name, phone, email, delivery_location, created_at, updated_at
		FROM buyers
		WHERE id = $1
	`
	err = r.db.QueryRowContext(ctx, query, parsedID).Scan(
		&b.ID,
		&b.Name,
		&b.Phone,
		&b.Email,
		&b.DeliveryLocation,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBuyerNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepository) UpdateContact(ctx context.Context, id string, name, phone, deliveryLocation string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE buyers SET name=$2, phone=$3, delivery_location=$4, updated_at=$5
		WHERE id=$1`,
		id, name, phone, deliveryLocation, time.Now())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBuyerNotFound
	}
	return nil
}
