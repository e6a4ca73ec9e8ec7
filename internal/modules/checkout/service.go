package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkamanga/sokoni-backend/internal/mail"
	"github.com/mkamanga/sokoni-backend/internal/modules/buyer"
	"github.com/mkamanga/sokoni-backend/internal/modules/cart"
	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
	"github.com/mkamanga/sokoni-backend/internal/modules/inventory"
	"github.com/mkamanga/sokoni-backend/internal/modules/notification"
	"github.com/mkamanga/sokoni-backend/internal/modules/order"
	"github.com/mkamanga/sokoni-backend/internal/modules/shop"
)

// BuyerReader resolves the buyer contact snapshot.
type BuyerReader interface {
	GetBuyerByID(ctx context.Context, id string) (*buyer.Buyer, error)
}

// CartStore reads and clears the buyer's cart.
type CartStore interface {
	GetCart(ctx context.Context, buyerID string) (*cart.Cart, error)
	Clear(ctx context.Context, buyerID string) error
}

// CatalogResolver reads live catalog state for one cart line.
type CatalogResolver interface {
	ResolveLine(ctx context.Context, productID, color, size string) (*catalog.ResolvedLine, error)
}

// StockReserver is the atomic test-and-decrement primitive.
type StockReserver interface {
	Reserve(ctx context.Context, productID, color, size string, qty int) (*inventory.Reservation, error)
}

// OrderWriter persists one shop's order.
type OrderWriter interface {
	Create(ctx context.Context, o *order.Order) error
}

// ShopReader resolves shop names for the receipt.
type ShopReader interface {
	GetShopByID(ctx context.Context, id string) (*shop.Shop, error)
}

// SoldOutDispatcher records sold-out events off the checkout path.
type SoldOutDispatcher interface {
	Dispatch(ev notification.SoldOutEvent) bool
}

// Service is the checkout orchestrator: one invocation turns the
// buyer's multi-shop cart into at most one order per shop.
type Service struct {
	buyers     BuyerReader
	carts      CartStore
	catalog    CatalogResolver
	stock      StockReserver
	orders     OrderWriter
	shops      ShopReader
	dispatcher SoldOutDispatcher
	mailer     mail.Mailer
	logger     *zap.Logger

	mailWG sync.WaitGroup
}

// Deps bundles the collaborators of the checkout service.
type Deps struct {
	Buyers     BuyerReader
	Carts      CartStore
	Catalog    CatalogResolver
	Stock      StockReserver
	Orders     OrderWriter
	Shops      ShopReader
	Dispatcher SoldOutDispatcher
	Mailer     mail.Mailer
	Logger     *zap.Logger
}

// NewService creates the checkout orchestrator.
func NewService(d Deps) *Service {
	return &Service{
		buyers:     d.Buyers,
		carts:      d.Carts,
		catalog:    d.Catalog,
		stock:      d.Stock,
		orders:     d.Orders,
		shops:      d.Shops,
		dispatcher: d.Dispatcher,
		mailer:     d.Mailer,
		logger:     d.Logger,
	}
}

// Close waits for in-flight receipt sends to finish.
func (s *Service) Close() { s.mailWG.Wait() }

// Checkout runs one checkout pass: load and resolve the cart, split it
// by shop, reserve stock and write one order per shop, dispatch
// sold-out notifications, send a consolidated receipt, and clear the
// cart. Shops are processed independently; an earlier shop's committed
// order is never rolled back when a later one fails.
func (s *Service) Checkout(ctx context.Context, req Request) (*Result, error) {
	b, err := s.buyers.GetBuyerByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.GetCart(ctx, req.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	deliveryLocation := req.DeliveryLocation
	if deliveryLocation == "" {
		deliveryLocation = b.DeliveryLocation
	}

	now := time.Now()
	resolved, failed := s.loadSnapshot(ctx, c.Lines)

	shopIDs, groups := splitByShop(resolved)

	var (
		mu          sync.Mutex
		orders      []*order.Order
		failedItems = failed
		failedShops []ShopFailure
	)

	// Independent shops share no mutable state; fan out one goroutine
	// per shop. Stock rows stay serialized by the reservation primitive.
	var wg sync.WaitGroup
	for _, shopID := range shopIDs {
		wg.Add(1)
		go func(shopID uuid.UUID, lines []resolvedLine) {
			defer wg.Done()
			o, lineFailures, err := s.processShop(ctx, b, shopID, deliveryLocation, lines, now)
			mu.Lock()
			defer mu.Unlock()
			failedItems = append(failedItems, lineFailures...)
			if err != nil {
				failedShops = append(failedShops, ShopFailure{ShopID: shopID, Reason: err.Error()})
				return
			}
			if o != nil {
				orders = append(orders, o)
			}
		}(shopID, groups[shopID])
	}
	wg.Wait()

	s.sendReceipt(b, orders, failedItems, req.ShippingCost)

	// The cart is always emptied after one pass; failed lines are
	// surfaced in the result, not retained.
	if err := s.carts.Clear(ctx, req.BuyerID); err != nil {
		s.logger.Error("cart clear failed after checkout",
			zap.String("buyer_id", req.BuyerID), zap.Error(err))
	}

	status := StatusCompleted
	if len(failedItems) > 0 || len(failedShops) > 0 {
		status = StatusPartiallyCompleted
	}
	return &Result{
		Status:      status,
		Orders:      orders,
		FailedItems: failedItems,
		FailedShops: failedShops,
	}, nil
}

// loadSnapshot enriches each cart line with live catalog state. Lines
// that no longer resolve become failed items instead of aborting the
// whole checkout.
func (s *Service) loadSnapshot(ctx context.Context, lines []cart.Line) ([]resolvedLine, []FailedItem) {
	var resolved []resolvedLine
	var failed []FailedItem
	for _, l := range lines {
		live, err := s.catalog.ResolveLine(ctx, l.ProductID.String(), l.Color, l.Size)
		if err != nil {
			s.logger.Warn("cart line no longer resolves",
				zap.String("product_id", l.ProductID.String()),
				zap.String("color", l.Color), zap.String("size", l.Size),
				zap.Error(err))
			failed = append(failed, FailedItem{
				ShopID:    l.ShopID,
				ProductID: l.ProductID,
				Title:     l.Title,
				Color:     l.Color,
				Size:      l.Size,
				Requested: l.Quantity,
				Available: 0,
			})
			continue
		}
		resolved = append(resolved, resolvedLine{
			Line:          l,
			liveUnitPrice: live.UnitPrice,
			liveOffer:     live.Offer,
		})
	}
	return resolved, failed
}

// processShop reserves stock line by line and writes one order for the
// reserved subset. A persistence failure is fatal for this shop only;
// its already-decremented stock is not returned.
func (s *Service) processShop(ctx context.Context, b *buyer.Buyer, shopID uuid.UUID, deliveryLocation string, lines []resolvedLine, now time.Time) (*order.Order, []FailedItem, error) {
	var orderLines []order.Line
	var failures []FailedItem
	total := 0.0

	for _, l := range lines {
		res, err := s.stock.Reserve(ctx, l.ProductID.String(), l.Color, l.Size, l.Quantity)
		if err != nil {
			available := 0
			var shortfall *inventory.InsufficientStockError
			if errors.As(err, &shortfall) {
				available = shortfall.Available
			} else if !errors.Is(err, inventory.ErrStockNotFound) {
				s.logger.Error("stock reservation failed",
					zap.String("product_id", l.ProductID.String()), zap.Error(err))
			}
			failures = append(failures, FailedItem{
				ShopID:    shopID,
				ProductID: l.ProductID,
				Title:     l.Title,
				Color:     l.Color,
				Size:      l.Size,
				Requested: l.Quantity,
				Available: available,
			})
			continue
		}

		unitPrice := ResolveUnitPrice(l.liveUnitPrice, l.liveOffer, now)
		orderLines = append(orderLines, order.Line{
			ProductID: l.ProductID,
			Title:     l.Title,
			Image:     l.Image,
			UnitPrice: unitPrice,
			Quantity:  l.Quantity,
			Color:     l.Color,
			Size:      l.Size,
		})
		total += unitPrice * float64(l.Quantity)

		if res.JustSoldOut {
			s.dispatcher.Dispatch(notification.SoldOutEvent{
				ShopID:    shopID,
				ProductID: l.ProductID,
				Color:     l.Color,
				Size:      l.Size,
			})
		}
	}

	// Every line failed: no order for this shop.
	if len(orderLines) == 0 {
		return nil, failures, nil
	}

	o := &order.Order{
		ID:               uuid.New(),
		OrderNumber:      order.NewOrderNumber(),
		ShopID:           shopID,
		BuyerID:          b.ID,
		BuyerName:        b.Name,
		BuyerPhone:       b.Phone,
		DeliveryLocation: deliveryLocation,
		Lines:            orderLines,
		TotalPrice:       round2(total),
		Status:           order.StatusNew,
		CreatedAt:        now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		s.logger.Error("order persistence failed, reserved stock not returned",
			zap.String("shop_id", shopID.String()), zap.Error(err))
		return nil, failures, fmt.Errorf("persist order: %w", err)
	}
	return o, failures, nil
}

// sendReceipt composes the consolidated receipt and hands it to the
// mail transport off the request path. Failures are logged, never
// surfaced to the buyer.
func (s *Service) sendReceipt(b *buyer.Buyer, orders []*order.Order, failed []FailedItem, shippingCost float64) {
	if len(orders) == 0 && len(failed) == 0 {
		return
	}
	shopNames := make(map[uuid.UUID]string)
	for _, o := range orders {
		if _, ok := shopNames[o.ShopID]; ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		sh, err := s.shops.GetShopByID(ctx, o.ShopID.String())
		cancel()
		if err == nil {
			shopNames[o.ShopID] = sh.Name
		}
	}
	body := composeReceipt(b.Name, orders, shopNames, failed, shippingCost)

	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, b.Email, "Your order receipt", body); err != nil {
			s.logger.Error("receipt mail failed",
				zap.String("buyer_id", b.ID.String()), zap.Error(err))
		}
	}()
}
