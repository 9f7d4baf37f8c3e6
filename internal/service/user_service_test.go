package service

import (
	"context"
	"testing"

	"github.com/liliang-cn/ragshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	svc := NewUserService(newTestStore(t), NoLatency())
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)

	u, err := svc.UpdateRole(ctx, "3", &domain.UpdateRoleRequest{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = svc.UpdateRole(ctx, "3", &domain.UpdateRoleRequest{Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateRole(ctx, "missing", &domain.UpdateRoleRequest{Role: domain.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	me, err := svc.Current(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", me.Name)
	assert.Equal(t, domain.RoleAdmin, me.Role)

	_, err = svc.Current(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
