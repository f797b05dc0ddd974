package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_Example(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello"}),
		CreatedBy:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Version)
	assert.Equal(t, model.StatusDraft, item.Status)
	assert.True(t, item.IsDraft)
	assert.Nil(t, item.PublishedAt)
	assert.Equal(t, item.CreatedAt, item.LastModified)

	updated, err := f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": "Hi"}),
		Actor:           "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.True(t, updated.LastModified.After(item.LastModified))

	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	assert.True(t, value.MustFrom(map[string]any{"title": "Hello"}).Equal(revisions[0].Data))
	assert.Equal(t, int64(1), revisions[0].Version)
	assert.Equal(t, "bob", revisions[0].CreatedBy)

	got, err := f.content.GetContent(ctx, item.ID, "")
	require.NoError(t, err)
	assert.True(t, value.MustFrom(map[string]any{"title": "Hi"}).Equal(got.Data))

	assert.Equal(t, []string{queue.EventContentCreated, queue.EventContentUpdated}, f.events.Types())
}

func TestContentService_CreateContent(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	_, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "missing"})
	assert.ErrorIs(t, err, ErrUnknownCollection)

	published, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Status:     model.StatusPublished,
	})
	require.NoError(t, err)
	assert.False(t, published.IsDraft)
	require.NotNil(t, published.PublishedAt)
	assert.True(t, published.Data.IsObject())

	archived, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "article", Status: "archived"})
	require.NoError(t, err)
	assert.True(t, archived.IsDraft)
	assert.Nil(t, archived.PublishedAt)

	_, err = f.registry.DefineCollection(ctx, DefineCollectionRequest{Name: "settings", Singleton: true})
	require.NoError(t, err)
	_, err = f.content.CreateContent(ctx, CreateContentRequest{Collection: "settings"})
	require.NoError(t, err)
	_, err = f.content.CreateContent(ctx, CreateContentRequest{Collection: "settings"})
	assert.ErrorIs(t, err, ErrSingletonExists)
}

func TestContentService_VersionIncrements(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "v0"}),
	})
	require.NoError(t, err)

	const updates = 5
	for i := 1; i <= updates; i++ {
		updated, err := f.content.UpdateContent(ctx, UpdateContentRequest{
			ID:              item.ID,
			ExpectedVersion: int64(i),
			Data:            value.MustFrom(map[string]any{"title": "v" + string(rune('0'+i))}),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), updated.Version)
	}

	_, err = f.content.UpdateContent(ctx, UpdateContentRequest{ID: item.ID, ExpectedVersion: 3})
	var conflict *VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, int64(3), conflict.Expected)
	assert.Equal(t, int64(updates+1), conflict.Current)

	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, revisions, updates)
	for i, revision := range revisions {
		// newest first: the snapshot of version n holds title "v(n-1)"
		version := int64(updates - i)
		assert.Equal(t, version, revision.Version)
		title, _ := revision.Data.Get("title")
		assert.Equal(t, "v"+string(rune('0'+version-1)), title.AsString())
	}

	_, err = f.content.UpdateContent(ctx, UpdateContentRequest{ID: "missing", ExpectedVersion: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_ConcurrentUpdates(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "article"})
	require.NoError(t, err)

	const writers = 2
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.content.UpdateContent(ctx, UpdateContentRequest{
				ID:              item.ID,
				ExpectedVersion: 1,
				Data:            value.MustFrom(map[string]any{"title": "writer"}),
			})
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrVersionConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	got, err := f.content.GetContent(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)

	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, revisions, 1)
}

func TestContentService_MergeAndReplace(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello", "body": "text"}),
	})
	require.NoError(t, err)

	merged, err := f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": "Hi"}),
	})
	require.NoError(t, err)
	assert.True(t, value.MustFrom(map[string]any{"title": "Hi", "body": "text"}).Equal(merged.Data))

	statusOnly, err := f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 2,
		Status:          ptr(model.StatusPublished),
	})
	require.NoError(t, err)
	assert.True(t, merged.Data.Equal(statusOnly.Data))

	replaced, err := f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 3,
		Data:            value.MustFrom(map[string]any{"body": "only"}),
		Replace:         true,
	})
	require.NoError(t, err)
	assert.True(t, value.MustFrom(map[string]any{"body": "only"}).Equal(replaced.Data))
}

func TestContentService_PublishedAtSetOnce(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "article"})
	require.NoError(t, err)

	transitions := []string{model.StatusPublished, model.StatusDraft, model.StatusPublished}
	var firstPublish *model.Content
	current := item
	for _, status := range transitions {
		current, err = f.content.UpdateContent(ctx, UpdateContentRequest{
			ID:              item.ID,
			ExpectedVersion: current.Version,
			Status:          ptr(status),
		})
		require.NoError(t, err)
		assert.Equal(t, status != model.StatusPublished, current.IsDraft)
		if firstPublish == nil {
			firstPublish = current
		}
	}

	require.NotNil(t, current.PublishedAt)
	assert.True(t, firstPublish.PublishedAt.Equal(*current.PublishedAt))

	stored, err := f.content.GetContent(ctx, item.ID, "")
	require.NoError(t, err)
	require.NotNil(t, stored.PublishedAt)
	assert.True(t, firstPublish.PublishedAt.Equal(*stored.PublishedAt))

	assert.Equal(t, []string{
		queue.EventContentCreated,
		queue.EventContentUpdated, queue.EventContentPublished,
		queue.EventContentUpdated, queue.EventContentUnpublished,
		queue.EventContentUpdated, queue.EventContentPublished,
	}, f.events.Types())
}

func TestContentService_DeleteContent(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello"}),
	})
	require.NoError(t, err)
	_, err = f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": "Hi"}),
	})
	require.NoError(t, err)
	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "fr", Value: ptr("Salut")})
	require.NoError(t, err)

	require.NoError(t, f.content.DeleteContent(ctx, item.ID, "alice"))

	_, err = f.content.GetContent(ctx, item.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, revisions, 1)

	translations, err := f.translations.ListTranslations(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Empty(t, translations)

	err = f.content.DeleteContent(ctx, item.ID, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_StrictSchema(t *testing.T) {
	f := newFixture(t, ContentOptions{Strict: true})
	f.articles(t)
	ctx := context.Background()

	_, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"subtitle": "x"}),
	})
	assert.ErrorIs(t, err, ErrUnknownField)

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello"}),
	})
	require.NoError(t, err)

	_, err = f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": 42}),
	})
	assert.ErrorIs(t, err, ErrInvalidValue)

	// a rejected update leaves no revision behind
	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestContentService_ListContent(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		status := model.StatusDraft
		if i%2 == 0 {
			status = model.StatusPublished
		}
		_, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "article", Status: status})
		require.NoError(t, err)
	}

	items, total, err := f.content.ListContent(ctx, ListContentRequest{Collection: "article", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.True(t, items[0].LastModified.After(items[1].LastModified))

	items, total, err = f.content.ListContent(ctx, ListContentRequest{Collection: "article", Status: model.StatusPublished})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)

	_, _, err = f.content.ListContent(ctx, ListContentRequest{Collection: "missing"})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestContentService_RestoreRevision(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello"}),
	})
	require.NoError(t, err)
	_, err = f.content.UpdateContent(ctx, UpdateContentRequest{
		ID:              item.ID,
		ExpectedVersion: 1,
		Data:            value.MustFrom(map[string]any{"title": "Hi", "body": "new"}),
		Status:          ptr(model.StatusPublished),
	})
	require.NoError(t, err)

	revisions, err := f.content.ListRevisions(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 1)

	revision, err := f.content.GetRevision(ctx, revisions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, revision.ItemID)

	restored, err := f.content.RestoreRevision(ctx, RestoreRevisionRequest{RevisionID: revision.ID, ExpectedVersion: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), restored.Version)
	assert.Equal(t, model.StatusDraft, restored.Status)
	assert.True(t, value.MustFrom(map[string]any{"title": "Hello"}).Equal(restored.Data))
	// unpublishing keeps the first publish time
	assert.NotNil(t, restored.PublishedAt)

	_, err = f.content.RestoreRevision(ctx, RestoreRevisionRequest{RevisionID: revision.ID, ExpectedVersion: 2})
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = f.content.GetRevision(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
