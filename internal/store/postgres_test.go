package store

import (
	"context"
	"testing"
	"time"

	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/tester"
	"github.com/emrgen/cms/internal/value"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGormStore_Postgres runs the dialect sensitive paths against a real
// postgres: JSONB payloads, the upsert clause and duplicate translation.
func TestGormStore_Postgres(t *testing.T) {
	s := NewGormStore(tester.PostgresDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateCollection(ctx, &model.Collection{ID: uuid.New().String(), Name: "article", CreatedAt: epoch}))
	err := s.CreateCollection(ctx, &model.Collection{ID: uuid.New().String(), Name: "article", CreatedAt: epoch})
	assert.ErrorIs(t, err, ErrDuplicate)

	item := createItem(t, s, "article")
	item.Data = value.MustFrom(map[string]any{"title": "Hi", "tags": []any{"a", "b"}})
	item.Version = 2
	require.NoError(t, s.UpdateContent(ctx, item, 1))
	assert.ErrorIs(t, s.UpdateContent(ctx, item, 1), ErrStaleVersion)

	got, err := s.GetContent(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, item.Data.Equal(got.Data))

	value1, value2 := "Hallo", "Servus"
	for _, v := range []*string{&value1, &value2} {
		require.NoError(t, s.UpsertTranslation(ctx, &model.Translation{
			ID: uuid.New().String(), Collection: "article", ItemID: item.ID, Field: "title", Language: "de", Value: v,
		}))
	}
	translations, err := s.ListTranslations(ctx, item.ID, "de")
	require.NoError(t, err)
	require.Len(t, translations, 1)
	assert.Equal(t, "Servus", *translations[0].Value)
}

func deleteItem(ctx context.Context, s Store, id string) error {
	return s.Transaction(ctx, func(tx Store) error {
		if _, err := tx.GetContentForUpdate(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteItemTranslations(ctx, id); err != nil {
			return err
		}
		return tx.DeleteContent(ctx, id)
	})
}

func translateItem(ctx context.Context, s Store, item *model.Content, wait time.Duration) error {
	return s.Transaction(ctx, func(tx Store) error {
		if _, err := tx.GetContentForUpdate(ctx, item.ID); err != nil {
			return err
		}
		time.Sleep(wait)
		title := "Hallo"
		return tx.UpsertTranslation(ctx, &model.Translation{
			ID: uuid.New().String(), Collection: item.Collection, ItemID: item.ID, Field: "title", Language: "de", Value: &title,
		})
	})
}

// TestGormStore_PostgresDeleteWithTranslation checks that a translation write
// racing the delete of its item never outlives the item.
func TestGormStore_PostgresDeleteWithTranslation(t *testing.T) {
	s := NewGormStore(tester.PostgresDB(t))
	ctx := context.Background()

	t.Run("translation first", func(t *testing.T) {
		item := createItem(t, s, "article")

		translated := make(chan error, 1)
		go func() {
			translated <- translateItem(ctx, s, item, 300*time.Millisecond)
		}()

		// the delete starts while the translation still holds the row
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, deleteItem(ctx, s, item.ID))
		require.NoError(t, <-translated)

		translations, err := s.ListTranslations(ctx, item.ID, "")
		require.NoError(t, err)
		assert.Empty(t, translations)
		_, err = s.GetContent(ctx, item.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete first", func(t *testing.T) {
		item := createItem(t, s, "article")

		translated := make(chan error, 1)
		err := s.Transaction(ctx, func(tx Store) error {
			if _, err := tx.GetContentForUpdate(ctx, item.ID); err != nil {
				return err
			}
			go func() {
				translated <- translateItem(ctx, s, item, 0)
			}()
			time.Sleep(100 * time.Millisecond)
			if err := tx.DeleteItemTranslations(ctx, item.ID); err != nil {
				return err
			}
			return tx.DeleteContent(ctx, item.ID)
		})
		require.NoError(t, err)
		assert.ErrorIs(t, <-translated, ErrNotFound)

		translations, err := s.ListTranslations(ctx, item.ID, "")
		require.NoError(t, err)
		assert.Empty(t, translations)
	})
}
