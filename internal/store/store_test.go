package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string
	Name string
}

type fakeSource struct {
	listResult []record
	listErr    error
	created    record
	createErr  error
	updated    record
	updateErr  error
	deleteErr  error
}

func (f *fakeSource) List(context.Context) ([]record, error)          { return f.listResult, f.listErr }
func (f *fakeSource) Create(context.Context, any) (record, error)     { return f.created, f.createErr }
func (f *fakeSource) Update(context.Context, string, any) (record, error) {
	return f.updated, f.updateErr
}
func (f *fakeSource) Delete(context.Context, string) error { return f.deleteErr }

func newTestStore(src *fakeSource) *Store[record] {
	return New("records", src, func(r record) string { return r.ID })
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces collection and clears error", func(t *testing.T) {
		src := &fakeSource{listResult: []record{{ID: "1"}, {ID: "2"}}}
		s := newTestStore(src)

		require.NoError(t, s.Fetch(ctx))

		snap := s.Snapshot()
		assert.Len(t, snap.Records, 2)
		assert.True(t, snap.Loaded)
		assert.False(t, snap.Loading)
		assert.Empty(t, snap.Err)
	})

	t.Run("failure keeps last-known-good and sets error", func(t *testing.T) {
		src := &fakeSource{listResult: []record{{ID: "1"}}}
		s := newTestStore(src)
		require.NoError(t, s.Fetch(ctx))

		src.listErr = errors.New("gateway down")
		require.Error(t, s.Fetch(ctx))

		snap := s.Snapshot()
		assert.Len(t, snap.Records, 1, "previous collection must survive a failed refresh")
		assert.True(t, snap.Loaded)
		assert.NotEmpty(t, snap.Err)

		// A later success clears the error again.
		src.listErr = nil
		src.listResult = []record{{ID: "1"}, {ID: "3"}}
		require.NoError(t, s.Fetch(ctx))
		snap = s.Snapshot()
		assert.Len(t, snap.Records, 2)
		assert.Empty(t, snap.Err)
	})
}

func TestCreateInsertsAtFront(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{listResult: []record{{ID: "1"}, {ID: "2"}}, created: record{ID: "9", Name: "new"}}
	s := newTestStore(src)
	require.NoError(t, s.Fetch(ctx))

	created, err := s.Create(ctx, map[string]string{"name": "new"})
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Records, 3)
	assert.Equal(t, "9", snap.Records[0].ID, "created record must land at index 0")

	seen := 0
	for _, r := range snap.Records {
		if r.ID == "9" {
			seen++
		}
	}
	assert.Equal(t, 1, seen, "created record must appear exactly once")
}

func TestUpdateReplacesOnlyMatch(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{
		listResult: []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "c"}},
		updated:    record{ID: "2", Name: "B"},
	}
	s := newTestStore(src)
	require.NoError(t, s.Fetch(ctx))
	before := s.Snapshot().Records

	_, err := s.Update(ctx, "2", map[string]string{"name": "B"})
	require.NoError(t, err)

	after := s.Snapshot().Records
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, "B", after[1].Name)
	assert.Equal(t, before[2], after[2])
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes exactly the matching record", func(t *testing.T) {
		src := &fakeSource{listResult: []record{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
		s := newTestStore(src)
		require.NoError(t, s.Fetch(ctx))

		require.NoError(t, s.Delete(ctx, "2"))

		snap := s.Snapshot()
		assert.Len(t, snap.Records, 2)
		_, found := s.Get("2")
		assert.False(t, found)
	})

	t.Run("unknown id leaves length unchanged", func(t *testing.T) {
		src := &fakeSource{listResult: []record{{ID: "1"}}}
		s := newTestStore(src)
		require.NoError(t, s.Fetch(ctx))

		require.NoError(t, s.Delete(ctx, "404"))
		assert.Len(t, s.Snapshot().Records, 1)
	})

	t.Run("gateway failure keeps the record", func(t *testing.T) {
		src := &fakeSource{listResult: []record{{ID: "1"}}, deleteErr: errors.New("nope")}
		s := newTestStore(src)
		require.NoError(t, s.Fetch(ctx))

		require.Error(t, s.Delete(ctx, "1"))
		snap := s.Snapshot()
		assert.Len(t, snap.Records, 1)
		assert.NotEmpty(t, snap.Err)
	})
}

func TestEnsureLoaded(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{listResult: []record{{ID: "1"}}}
	s := newTestStore(src)

	require.NoError(t, s.EnsureLoaded(ctx))
	// A second call must not refetch: change the source and verify the
	// cache is untouched.
	src.listResult = []record{{ID: "1"}, {ID: "2"}}
	require.NoError(t, s.EnsureLoaded(ctx))
	assert.Len(t, s.Snapshot().Records, 1)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{listResult: []record{{ID: "1", Name: "a"}}}
	s := newTestStore(src)
	require.NoError(t, s.Fetch(ctx))

	s.Apply(record{ID: "1", Name: "patched"})
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "patched", got.Name)

	// Action results for unseen records are prepended.
	s.Apply(record{ID: "7"})
	snap := s.Snapshot()
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "7", snap.Records[0].ID)
}

func TestSnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{listResult: []record{{ID: "1", Name: "a"}}}
	s := newTestStore(src)
	require.NoError(t, s.Fetch(ctx))

	snap := s.Snapshot()
	snap.Records[0].Name = "mutated"

	fresh, _ := s.Get("1")
	assert.Equal(t, "a", fresh.Name, "snapshot mutation must not leak into the store")
}
