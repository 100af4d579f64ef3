package collection

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/infrastructure/db/memory"
)

func TestCollection_ModifyPersists(t *testing.T) {
	ctx := context.Background()
	roles := NewRoles(memory.New())

	err := roles.Modify(ctx, func(rs []domain.Role) ([]domain.Role, error) {
		return append(rs, domain.Role{ID: 1, Name: domain.RoleSuperAdmin}), nil
	})
	require.NoError(t, err)

	all, err := roles.All(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Role{{ID: 1, Name: domain.RoleSuperAdmin}}, all)
}

func TestCollection_ModifyErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(memory.New())
	boom := errors.New("boom")

	err := users.Modify(ctx, func(us []domain.User) ([]domain.User, error) {
		return append(us, domain.User{ID: 1}), boom
	})
	require.ErrorIs(t, err, boom)

	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCollection_ConcurrentModifyKeepsEveryWrite(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(memory.New())

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = users.Modify(ctx, func(us []domain.User) ([]domain.User, error) {
				return append(us, domain.User{ID: len(us) + 1}), nil
			})
		}()
	}
	wg.Wait()

	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, writers)
	for i, u := range all {
		require.Equal(t, i+1, u.ID)
	}
}

func TestCollection_UndecodableRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Save(ctx, Users, []json.RawMessage{json.RawMessage(`{"id":"one"}`)}))

	_, err := NewUsers(store).All(ctx)
	require.ErrorIs(t, err, domain.ErrCorruptData)
}
