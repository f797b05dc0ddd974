package service

import (
	"context"
	"sync"
	"testing"

	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavedStore runs afterRead once, right after the first successful
// GetContent outside a transaction returns.
type interleavedStore struct {
	store.Store
	once      sync.Once
	afterRead func()
}

func (s *interleavedStore) GetContent(ctx context.Context, id string) (*model.Content, error) {
	content, err := s.Store.GetContent(ctx, id)
	if err == nil && s.afterRead != nil {
		s.once.Do(s.afterRead)
	}
	return content, err
}

func TestContentService_DeleteDuringCacheMiss(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello"}),
	})
	require.NoError(t, err)

	contentCache := cache.NewMemoryContentCache()
	wrapped := &interleavedStore{Store: f.store}
	svc := NewContentService(wrapped, contentCache, queue.NewNopQueue(), ContentOptions{}).WithClock(f.clock.Now)
	wrapped.afterRead = func() {
		require.NoError(t, svc.DeleteContent(ctx, item.ID, "bob"))
	}

	// the read started before the delete committed, so it may still see the item
	_, err = svc.GetContent(ctx, item.ID, "")
	require.NoError(t, err)

	cached, err := contentCache.GetContent(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = svc.GetContent(ctx, item.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_CacheKeepsNewestVersion(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	contentCache := cache.NewMemoryContentCache()
	svc := NewContentService(f.store, contentCache, queue.NewNopQueue(), ContentOptions{}).WithClock(f.clock.Now)

	item, err := svc.CreateContent(ctx, CreateContentRequest{Collection: "article"})
	require.NoError(t, err)
	updated, err := svc.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": "Hi"}),
	})
	require.NoError(t, err)

	// a late refresh with the first version is ignored
	require.NoError(t, contentCache.SetContent(ctx, item))

	got, err := svc.GetContent(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Equal(t, updated.Version, got.Version)
	assert.True(t, updated.Data.Equal(got.Data))
}
