package facility

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepository struct {
	groups    []ResourceGroup
	resources []Resource
	err       error
	loads     int
}

func (s *stubRepository) ListFacilities(context.Context) ([]Facility, error) {
	return []Facility{{ID: "f1", Name: "Sportpark"}}, nil
}

func (s *stubRepository) ListGroups(context.Context, string) ([]ResourceGroup, error) {
	s.loads++
	return s.groups, s.err
}

func (s *stubRepository) ListResources(context.Context, string) ([]Resource, error) {
	return s.resources, s.err
}

// memoryStore mimics the Redis store by round-tripping values through JSON.
type memoryStore struct {
	entries map[string][]byte
	failGet bool
}

func (m *memoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	if m.failGet {
		return false, errors.New("redis unreachable")
	}
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func TestService_ListBookable(t *testing.T) {
	groups, resources := fixtureConfig()
	repo := &stubRepository{groups: groups, resources: resources}
	svc := NewService(repo, nil, time.Minute, zap.NewNop())

	got, err := svc.ListBookable(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	res, err := svc.GetBookable(context.Background(), "r-field-b")
	require.NoError(t, err)
	assert.Equal(t, "r-field", res.PartOf)

	_, err = svc.GetBookable(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListBookable_Cached(t *testing.T) {
	groups, resources := fixtureConfig()
	repo := &stubRepository{groups: groups, resources: resources}
	store := &memoryStore{entries: map[string][]byte{}}
	svc := NewService(repo, store, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)
	second, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.loads)
	assert.Equal(t, first, second)
	assert.Contains(t, store.entries, "bookable:all")

	_, err = svc.ListBookable(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads, "each facility has its own entry")
}

func TestService_ListBookable_CacheFailureFallsBack(t *testing.T) {
	groups, resources := fixtureConfig()
	repo := &stubRepository{groups: groups, resources: resources}
	svc := NewService(repo, &memoryStore{entries: map[string][]byte{}, failGet: true}, time.Minute, zap.NewNop())

	got, err := svc.ListBookable(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestService_ListBookable_InvalidConfig(t *testing.T) {
	repo := &stubRepository{
		groups: []ResourceGroup{{ID: "g"}},
		resources: []Resource{
			{ID: "dup", GroupID: "g"},
			{ID: "dup", GroupID: "g"},
		},
	}
	store := &memoryStore{entries: map[string][]byte{}}
	svc := NewService(repo, store, time.Minute, zap.NewNop())

	_, err := svc.ListBookable(context.Background(), "")
	assert.ErrorContains(t, err, ErrInvalidConfig.Message)
	assert.Empty(t, store.entries, "rejected configurations are not cached")
}

func TestService_ListBookable_RepositoryError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&stubRepository{err: boom}, nil, 0, zap.NewNop())

	_, err := svc.ListBookable(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

func TestService_ListBookableFresh_SeesSplitMadeAfterCaching(t *testing.T) {
	groups := []ResourceGroup{{ID: "g"}}
	repo := &stubRepository{groups: groups, resources: []Resource{{ID: "field", GroupID: "g"}}}
	store := &memoryStore{entries: map[string][]byte{}}
	svc := NewService(repo, store, time.Minute, zap.NewNop())
	ctx := context.Background()

	before, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.False(t, before[0].IsComposite)

	repo.resources = []Resource{{
		ID: "field", GroupID: "g", Splittable: true,
		SubResources: []SubResource{{ID: "a"}, {ID: "b"}},
	}}

	stale, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)
	assert.Len(t, stale, 1, "cached reads keep the old layout until refreshed")

	fresh, err := svc.ListBookableFresh(ctx, "")
	require.NoError(t, err)
	require.Len(t, fresh, 3)
	assert.True(t, fresh[0].IsComposite)
	assert.Equal(t, []string{"a", "b"}, fresh[0].Includes)

	cached, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, fresh, cached, "a fresh read refreshes the cache")
}

func TestService_Invalidate(t *testing.T) {
	groups, resources := fixtureConfig()
	repo := &stubRepository{groups: groups, resources: resources}
	store := &memoryStore{entries: map[string][]byte{}}
	svc := NewService(repo, store, time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ListBookable(ctx, "")
	require.NoError(t, err)
	_, err = svc.ListBookable(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, store.entries, 2)

	require.NoError(t, svc.Invalidate(ctx))
	assert.Empty(t, store.entries)

	_, err = svc.ListBookable(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.loads)
}
