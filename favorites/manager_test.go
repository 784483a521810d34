package favorites_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/favorites"
	"github.com/kbukum/simplemovies/kvstore"
	"github.com/kbukum/simplemovies/kvstore/kvstoretest"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/movies"
	"github.com/kbukum/simplemovies/movies/moviestest"
)

func TestAdd_WritesAndSyncs(t *testing.T) {
	spy := kvstoretest.NewSpy()
	sut := favorites.NewManager(spy, logger.NewNop())
	fav := moviestest.MakeMovie()

	require.NoError(t, sut.Add(context.Background(), fav))

	assert.True(t, spy.SetCalled())
	assert.True(t, spy.SyncCalled())
	assert.Equal(t, []movies.Movie{fav}, sut.Items())
	assert.True(t, sut.IsFavorite(fav.ImdbID))

	last, _ := spy.LastSet()
	assert.Equal(t, favorites.StorageKey, last.Key)
	var stored []movies.Movie
	require.NoError(t, json.Unmarshal(last.Value, &stored))
	assert.Equal(t, []movies.Movie{fav}, stored)
}

func TestAdd_Duplicate(t *testing.T) {
	spy := kvstoretest.NewSpy()
	sut := favorites.NewManager(spy, logger.NewNop())
	fav := moviestest.MakeMovie()

	require.NoError(t, sut.Add(context.Background(), fav))
	require.NoError(t, sut.Add(context.Background(), fav))

	assert.Len(t, sut.Items(), 1)
	assert.Equal(t, 1, spy.SyncCalls())
}

func TestAdd_FailureLeavesListUnchanged(t *testing.T) {
	tests := []struct {
		name string
		spy  func() *kvstoretest.Spy
	}{
		{"set fails", func() *kvstoretest.Spy { s := kvstoretest.NewSpy(); s.SetErr = errors.New("disk full"); return s }},
		{"sync fails", func() *kvstoretest.Spy { s := kvstoretest.NewSpy(); s.SyncErr = errors.New("io"); return s }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sut := favorites.NewManager(tt.spy(), logger.NewNop())

			err := sut.Add(context.Background(), moviestest.MakeMovie())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorage))
			assert.Empty(t, sut.Items())
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	spy := kvstoretest.NewSpy()
	sut := favorites.NewManager(spy, logger.NewNop())
	items := moviestest.MakeMovies(3)
	for _, m := range items {
		require.NoError(t, sut.Add(ctx, m))
	}

	require.NoError(t, sut.Remove(ctx, items[1].ImdbID))
	assert.Equal(t, []movies.Movie{items[0], items[2]}, sut.Items())
	assert.False(t, sut.IsFavorite(items[1].ImdbID))
	assert.Equal(t, 4, spy.SyncCalls())
}

func TestRemove_Unknown(t *testing.T) {
	spy := kvstoretest.NewSpy()
	sut := favorites.NewManager(spy, logger.NewNop())

	err := sut.Remove(context.Background(), "tt9999999")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	assert.False(t, spy.SetCalled())
}

func TestRemove_FailureLeavesListUnchanged(t *testing.T) {
	ctx := context.Background()
	spy := kvstoretest.NewSpy()
	sut := favorites.NewManager(spy, logger.NewNop())
	fav := moviestest.MakeMovie()
	require.NoError(t, sut.Add(ctx, fav))

	spy.SyncErr = errors.New("io")
	require.Error(t, sut.Remove(ctx, fav.ImdbID))
	assert.True(t, sut.IsFavorite(fav.ImdbID))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip through the store", func(t *testing.T) {
		store := kvstore.NewMemory()
		first := favorites.NewManager(store, logger.NewNop())
		items := moviestest.MakeMovies(2)
		for _, m := range items {
			require.NoError(t, first.Add(ctx, m))
		}

		second := favorites.NewManager(store, logger.NewNop())
		assert.Empty(t, second.Items())
		second.Load(ctx)
		assert.Equal(t, items, second.Items())
	})

	t.Run("missing key", func(t *testing.T) {
		sut := favorites.NewManager(kvstore.NewMemory(), logger.NewNop())
		sut.Load(ctx)
		assert.NotNil(t, sut.Items())
		assert.Empty(t, sut.Items())
	})

	t.Run("corrupt data", func(t *testing.T) {
		store := kvstore.NewMemory()
		_ = store.Set(ctx, favorites.StorageKey, []byte("garbage"))
		sut := favorites.NewManager(store, logger.NewNop())
		sut.Load(ctx)
		assert.Empty(t, sut.Items())
	})
}

func TestItemsIsACopy(t *testing.T) {
	sut := favorites.NewManager(kvstore.NewMemory(), logger.NewNop())
	require.NoError(t, sut.Add(context.Background(), moviestest.MakeMovie()))

	items := sut.Items()
	items[0].Title = "changed"
	assert.Equal(t, "title", sut.Items()[0].Title)
}

func TestConcurrentAdds(t *testing.T) {
	sut := favorites.NewManager(kvstore.NewMemory(), logger.NewNop())
	items := moviestest.MakeMovies(20)

	var wg sync.WaitGroup
	for _, m := range items {
		wg.Add(1)
		go func(m movies.Movie) {
			defer wg.Done()
			_ = sut.Add(context.Background(), m)
		}(m)
	}
	wg.Wait()

	assert.Len(t, sut.Items(), 20)
}
