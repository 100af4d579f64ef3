package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	require.NoError(t, err)
	return s, dir
}

func TestStore_LoadMissingCollectionIsEmpty(t *testing.T) {
	s, _ := newStore(t)

	records, err := s.Load(context.Background(), "users")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_SaveThenLoad(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()

	in := []json.RawMessage{
		json.RawMessage(`{"id":1,"role":"superadmin"}`),
		json.RawMessage(`{"id":2,"role":"admin"}`),
	}
	require.NoError(t, s.Save(ctx, "roles", in))

	out, err := s.Load(ctx, "roles")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.JSONEq(t, `{"id":2,"role":"admin"}`, string(out[1]))

	// only the collection file remains, no temp leftovers
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "roles.json", entries[0].Name())
}

func TestStore_SaveReplacesCollection(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "roles", []json.RawMessage{json.RawMessage(`{"id":1}`), json.RawMessage(`{"id":2}`)}))
	require.NoError(t, s.Save(ctx, "roles", []json.RawMessage{json.RawMessage(`{"id":3}`)}))

	out, err := s.Load(ctx, "roles")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.JSONEq(t, `{"id":3}`, string(out[0]))
}

func TestStore_LoadCorruptData(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"not an array":   `{"id":1}`,
		"not an object":  `[1, 2]`,
		"truncated file": `[{"id":1},`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s, dir := newStore(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(content), 0o644))

			_, err := s.Load(context.Background(), "users")
			require.ErrorIs(t, err, domain.ErrCorruptData)
		})
	}
}

func TestStore_EmptyFileIsEmptyCollection(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("  \n"), 0o644))

	records, err := s.Load(context.Background(), "users")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStore_RejectsPathLikeCollectionNames(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Load(context.Background(), "../etc/passwd")
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	err = s.Save(context.Background(), "", nil)
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStore_SaveRejectsNonObjects(t *testing.T) {
	s, _ := newStore(t)

	err := s.Save(context.Background(), "users", []json.RawMessage{json.RawMessage(`"bob"`)})
	require.ErrorIs(t, err, domain.ErrCorruptData)
}

func TestStore_Ping(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	require.ErrorIs(t, s.Ping(context.Background()), domain.ErrStorageUnavailable)
}
