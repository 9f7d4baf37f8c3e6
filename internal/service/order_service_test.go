package service

import (
	"context"
	"testing"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService(t *testing.T) {
	svc := NewOrderService(newTestStore(t), NoLatency())
	ctx := context.Background()

	list, err := svc.List(ctx, domain.OrderFilters{Search: "brown"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "ORD-2024-002", list.Data[0].OrderNumber)

	list, err = svc.List(ctx, domain.OrderFilters{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	o, err := svc.UpdateStatus(ctx, "2", &domain.UpdateOrderStatusRequest{Status: domain.OrderStatusShipped})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, o.Status)
	assert.Equal(t, 3705.36, o.Total)

	o, err = svc.UpdatePaymentStatus(ctx, "2", &domain.UpdatePaymentStatusRequest{PaymentStatus: domain.PaymentStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, o.PaymentStatus)

	_, err = svc.UpdateStatus(ctx, "2", &domain.UpdateOrderStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Get(ctx, "9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
