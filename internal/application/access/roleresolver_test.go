package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/logger"
)

func TestRoleResolver(t *testing.T) {
	ctx := context.Background()
	store := &mockRoleStore{admins: map[string]bool{"admin-1": true}}
	resolver := NewRoleResolver(store, logger.NewNopLogger())

	assert.True(t, resolver.IsAdmin(ctx, "admin-1"))
	assert.False(t, resolver.IsAdmin(ctx, "tenant-1"))
	assert.Equal(t, authorization.RoleAdmin, resolver.RoleOf(ctx, "admin-1"))
	assert.Equal(t, authorization.RoleUser, resolver.RoleOf(ctx, "tenant-1"))
}

func TestRoleResolver_EmptySubjectSkipsLookup(t *testing.T) {
	store := &mockRoleStore{}
	resolver := NewRoleResolver(store, logger.NewNopLogger())

	assert.False(t, resolver.IsAdmin(context.Background(), ""))
	assert.Zero(t, store.calls)
}

func TestRoleResolver_StoreErrorIsNotAdmin(t *testing.T) {
	store := &mockRoleStore{admins: map[string]bool{"admin-1": true}, err: errors.New("connection reset")}
	resolver := NewRoleResolver(store, logger.NewNopLogger())

	assert.False(t, resolver.IsAdmin(context.Background(), "admin-1"))
	assert.Equal(t, authorization.RoleUser, resolver.RoleOf(context.Background(), "admin-1"))
}
