package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements Repository for testing. UpdateStatus honors
// the conditional-write contract: the transition only lands when the
// stored status still equals the caller's from snapshot.
type MockRepository struct {
	order      *Order
	getErr     error
	updateErr  error
	lastStatus Status
	lastAt     time.Time

	// raceTo, when set, moves the stored order to that status right after
	// the next read, simulating a competing transition landing between a
	// caller's read and its write.
	raceTo Status
}

func (m *MockRepository) Create(_ context.Context, _ *Order) error { return nil }

func (m *MockRepository) GetByID(_ context.Context, _ string) (*Order, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	snapshot := *m.order
	if m.raceTo != "" {
		m.order.Status = m.raceTo
		m.raceTo = ""
	}
	return &snapshot, nil
}

func (m *MockRepository) ListByShop(_ context.Context, _ string, _ Status) ([]*Order, error) {
	return nil, nil
}

func (m *MockRepository) ListByBuyer(_ context.Context, _ string) ([]*Order, error) {
	return nil, nil
}

func (m *MockRepository) UpdateStatus(_ context.Context, _ string, from, to Status, at time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.order.Status != from {
		return ErrStatusConflict
	}
	m.order.Status = to
	m.lastStatus = to
	m.lastAt = at
	return nil
}

func newOrder(status Status) *Order {
	return &Order{ID: uuid.New(), Status: status, CreatedAt: time.Now()}
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusNew.CanTransitionTo(StatusPending))
	assert.True(t, StatusPending.CanTransitionTo(StatusPrepared))
	assert.True(t, StatusPrepared.CanTransitionTo(StatusDeliveredToAdmin))
	assert.True(t, StatusDeliveredToAdmin.CanTransitionTo(StatusDelivered))

	// Forward jumps skip intermediate states.
	assert.True(t, StatusNew.CanTransitionTo(StatusDelivered))
	assert.True(t, StatusPending.CanTransitionTo(StatusDeliveredToAdmin))

	// No backward moves, no self-transitions.
	assert.False(t, StatusDelivered.CanTransitionTo(StatusNew))
	assert.False(t, StatusPrepared.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	// Unknown statuses never transition.
	assert.False(t, Status("BOGUS").CanTransitionTo(StatusPending))
	assert.False(t, StatusNew.CanTransitionTo(Status("BOGUS")))
}

func TestUpdateStatus_ForwardMove(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusNew)}
	svc := NewService(repo)

	o, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, StatusPending, repo.lastStatus)
	assert.Nil(t, o.DeliveredToAdminAt)
	assert.Nil(t, o.DeliveredAt)
}

func TestUpdateStatus_BackwardMoveRejected(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusPrepared)}
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "NEW"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// A transition validated against a stale read must not land once a
// competing transition has moved the order on: the conditional write
// reports the conflict instead of overwriting the newer status.
func TestUpdateStatus_ConcurrentTransitionConflicts(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusNew), raceTo: StatusDelivered}
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, ErrStatusConflict)

	// The competing DELIVERED write survives; no backward move persisted.
	assert.Equal(t, StatusDelivered, repo.order.Status)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusNew)}
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "SHIPPED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_DeliveredToAdminStampsTimestamp(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusPrepared)}
	svc := NewService(repo)

	o, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "DELIVERED_TO_ADMIN"})
	require.NoError(t, err)
	require.NotNil(t, o.DeliveredToAdminAt)
	assert.WithinDuration(t, time.Now(), *o.DeliveredToAdminAt, time.Second)
	assert.Nil(t, o.DeliveredAt)
}

func TestUpdateStatus_DeliveredStampsTimestamp(t *testing.T) {
	repo := &MockRepository{order: newOrder(StatusDeliveredToAdmin)}
	svc := NewService(repo)

	o, err := svc.UpdateStatus(context.Background(), repo.order.ID.String(), UpdateStatusRequest{Status: "DELIVERED"})
	require.NoError(t, err)
	require.NotNil(t, o.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *o.DeliveredAt, time.Second)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	repo := &MockRepository{getErr: ErrOrderNotFound}
	svc := NewService(repo)

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), UpdateStatusRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListShopOrders_RejectsUnknownStatusFilter(t *testing.T) {
	svc := NewService(&MockRepository{})

	_, err := svc.ListShopOrders(context.Background(), uuid.NewString(), "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrderNumberFormat(t *testing.T) {
	n := NewOrderNumber()
	assert.Regexp(t, `^SOK-\d{8}-[0-9A-F]{4}$`, n)
	assert.NotEqual(t, n, NewOrderNumber())
}
