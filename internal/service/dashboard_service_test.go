package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_KPIs(t *testing.T) {
	store := newTestStore(t)
	svc := NewDashboardService(store, NoLatency())
	ctx := context.Background()

	kpis, err := svc.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, kpis.TotalProducts)
	assert.Equal(t, 4, kpis.TotalConversations)
	assert.Equal(t, 94.2, kpis.AIAccuracy)
	assert.Len(t, kpis.TopSearchedPhones, 5)

	require.NoError(t, NewProductService(store, NoLatency()).Delete(ctx, "1"))
	kpis, err = svc.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, kpis.TotalProducts)
}
