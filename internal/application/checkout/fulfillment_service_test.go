package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dressshop/backend/internal/domain/identity"
	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
)

func newPaidOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newCreatedOrder(uuid.New(), "order_"+uuid.NewString()[:8])
	_, err := o.MarkPaid(o.CreatedAt)
	require.NoError(t, err)
	return o
}

func TestFulfillmentService_MarkDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers a paid order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o := newPaidOrder(t)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orders.On("SaveDelivered", mock.Anything, o).Return(true, nil)

		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
		resp, err := service.MarkDelivered(ctx, newAdminCapability(t), o.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDelivered)
		assert.Equal(t, "delivered", resp.Status)
		assert.NotNil(t, resp.DeliveredAt)
		orders.AssertExpectations(t)
	})

	t.Run("delivering twice is a no-op", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o := newPaidOrder(t)
		_, err := o.MarkDelivered(o.CreatedAt)
		require.NoError(t, err)
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
		resp, err := service.MarkDelivered(ctx, newAdminCapability(t), o.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDelivered)
		orders.AssertNotCalled(t, "SaveDelivered", mock.Anything, mock.Anything)
	})

	t.Run("created order is not payable", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o := newCreatedOrder(uuid.New(), "order_B")
		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
		_, err := service.MarkDelivered(ctx, newAdminCapability(t), o.ID)
		assert.ErrorIs(t, err, order.ErrOrderNotPayable)
		assert.Equal(t, order.StatusCreated, o.Status)
		orders.AssertNotCalled(t, "SaveDelivered", mock.Anything, mock.Anything)
	})

	t.Run("zero capability is forbidden", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})

		_, err := service.MarkDelivered(ctx, identity.AdminCapability{}, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		id := uuid.New()
		orders.On("FindByID", mock.Anything, id).Return(nil, order.ErrOrderNotFound)

		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
		_, err := service.MarkDelivered(ctx, newAdminCapability(t), id)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("concurrent delivery by another admin is tolerated", func(t *testing.T) {
		orders := new(MockOrderRepository)
		o := newPaidOrder(t)
		delivered := *o
		delivered.Status = order.StatusDelivered

		orders.On("FindByID", mock.Anything, o.ID).Return(o, nil).Once()
		orders.On("SaveDelivered", mock.Anything, o).Return(false, nil)
		orders.On("FindByID", mock.Anything, o.ID).Return(&delivered, nil).Once()

		service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
		resp, err := service.MarkDelivered(ctx, newAdminCapability(t), o.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsDelivered)
		orders.AssertExpectations(t)
	})
}

func TestRoleAuthorizer_CustomerCannotDeliver(t *testing.T) {
	customer := newTestUser(identity.RoleCustomer)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

	capability, err := identity.NewRoleAuthorizer(users).AuthorizeAdmin(context.Background(), customer.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	orders := new(MockOrderRepository)
	service := NewFulfillmentService(FulfillmentServiceConfig{Orders: orders})
	_, err = service.MarkDelivered(context.Background(), capability, uuid.New())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
