package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
)

// ErrInvalidQuantity is returned for non-positive line quantities.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Service defines cart business logic.
type Service interface {
	// GetCart returns the buyer's cart. Offer snapshots are refreshed
	// from the catalog on repository reads; a cache hit may serve
	// snapshots up to the cache TTL old. They are advisory display data
	// either way: checkout reprices from the live catalog. A buyer with
	// no lines gets an empty cart.
	GetCart(ctx context.Context, buyerID string) (*Cart, error)

	// AddLine resolves the product against the catalog and adds the
	// chosen (product, color, size) to the cart.
	AddLine(ctx context.Context, buyerID string, req AddLineRequest) error

	// UpdateQuantity sets the quantity of an existing line.
	UpdateQuantity(ctx context.Context, buyerID, productID, color, size string, qty int) error

	// RemoveLine deletes one line from the cart.
	RemoveLine(ctx context.Context, buyerID, productID, color, size string) error

	// Clear removes every line. Invoked by checkout after a pass over
	// the cart, and exposed for the buyer's own "empty cart" action.
	Clear(ctx context.Context, buyerID string) error
}

// AddLineRequest is the payload for adding a line to the cart.
type AddLineRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type service struct {
	repo    Repository
	cache   Cache
	catalog catalog.Service
	logger  *zap.Logger
	sfg     singleflight.Group
}

// NewService creates a new cart service.
func NewService(repo Repository, cache Cache, cat catalog.Service, logger *zap.Logger) Service {
	return &service{repo: repo, cache: cache, catalog: cat, logger: logger}
}

func (s *service) GetCart(ctx context.Context, buyerID string) (*Cart, error) {
	// singleflight collapses concurrent cache misses for the same buyer.
	v, err, _ := s.sfg.Do(buyerID, func() (interface{}, error) {
		c, err := s.cache.Get(ctx, buyerID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("cart cache read failed", zap.String("buyer_id", buyerID), zap.Error(err))
		}

		c, err = s.repo.GetCart(ctx, buyerID)
		if err != nil {
			return nil, err
		}

		if setErr := s.cache.Set(ctx, buyerID, c); setErr != nil {
			s.logger.Warn("cart cache write failed", zap.String("buyer_id", buyerID), zap.Error(setErr))
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Cart), nil
}

func (s *service) AddLine(ctx context.Context, buyerID string, req AddLineRequest) error {
	if req.Quantity < 1 {
		return ErrInvalidQuantity
	}
	resolved, err := s.catalog.ResolveLine(ctx, req.ProductID, req.Color, req.Size)
	if err != nil {
		return fmt.Errorf("resolve product: %w", err)
	}
	line := Line{
		ShopID:         resolved.ShopID,
		ProductID:      resolved.ProductID,
		Color:          req.Color,
		Size:           req.Size,
		Quantity:       req.Quantity,
		Title:          resolved.Title,
		Image:          resolved.Image,
		UnitPriceAtAdd: resolved.UnitPrice,
		OfferSnapshot:  resolved.Offer,
		AddedAt:        time.Now(),
	}
	if err := s.repo.UpsertLine(ctx, buyerID, line); err != nil {
		return err
	}
	s.invalidate(buyerID)
	return nil
}

func (s *service) UpdateQuantity(ctx context.Context, buyerID, productID, color, size string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if err := s.repo.UpdateQuantity(ctx, buyerID, productID, color, size, qty); err != nil {
		return err
	}
	s.invalidate(buyerID)
	return nil
}

func (s *service) RemoveLine(ctx context.Context, buyerID, productID, color, size string) error {
	if err := s.repo.RemoveLine(ctx, buyerID, productID, color, size); err != nil {
		return err
	}
	s.invalidate(buyerID)
	return nil
}

func (s *service) Clear(ctx context.Context, buyerID string) error {
	if err := s.repo.Clear(ctx, buyerID); err != nil {
		return err
	}
	s.invalidate(buyerID)
	return nil
}

func (s *service) invalidate(buyerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, buyerID); err != nil {
		s.logger.Warn("cart cache invalidation failed", zap.String("buyer_id", buyerID), zap.Error(err))
	}
}
