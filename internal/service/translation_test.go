package service

import (
	"context"
	"testing"

	"github.com/emrgen/cms/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationService_Overlay(t *testing.T) {
	f := newFixture(t, ContentOptions{DefaultLanguage: "en"})
	f.articles(t)
	ctx := context.Background()

	item, err := f.content.CreateContent(ctx, CreateContentRequest{
		Collection: "article",
		Data:       value.MustFrom(map[string]any{"title": "Hello", "body": "World"}),
	})
	require.NoError(t, err)

	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "fr", Value: ptr("Bonjour")})
	require.NoError(t, err)
	// upsert replaces the first value
	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "fr", Value: ptr("Salut")})
	require.NoError(t, err)
	// an explicit null falls back to the base value
	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "body", Language: "fr"})
	require.NoError(t, err)
	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "en", Value: ptr("Hey")})
	require.NoError(t, err)

	tests := []struct {
		language string
		title    string
		body     string
	}{
		{language: "", title: "Hello", body: "World"},
		{language: "en", title: "Hello", body: "World"},
		{language: "fr", title: "Salut", body: "World"},
		{language: "de", title: "Hello", body: "World"},
	}

	for _, tt := range tests {
		t.Run("language "+tt.language, func(t *testing.T) {
			got, err := f.content.GetContent(ctx, item.ID, tt.language)
			require.NoError(t, err)
			title, _ := got.Data.Get("title")
			body, _ := got.Data.Get("body")
			assert.Equal(t, tt.title, title.AsString())
			assert.Equal(t, tt.body, body.AsString())
		})
	}

	fr, err := f.translations.ListTranslations(ctx, item.ID, "fr")
	require.NoError(t, err)
	assert.Len(t, fr, 2)

	all, err := f.translations.ListTranslations(ctx, item.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, f.translations.DeleteTranslation(ctx, item.ID, "title", "fr"))
	assert.ErrorIs(t, f.translations.DeleteTranslation(ctx, item.ID, "title", "fr"), ErrNotFound)

	got, err := f.content.GetContent(ctx, item.ID, "fr")
	require.NoError(t, err)
	title, _ := got.Data.Get("title")
	assert.Equal(t, "Hello", title.AsString())
}

func TestTranslationService_SetTranslation(t *testing.T) {
	f := newFixture(t, ContentOptions{Strict: true})
	f.articles(t)
	ctx := context.Background()

	_, err := f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: "missing", Field: "title", Language: "fr"})
	assert.ErrorIs(t, err, ErrNotFound)

	item, err := f.content.CreateContent(ctx, CreateContentRequest{Collection: "article"})
	require.NoError(t, err)

	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "subtitle", Language: "fr", Value: ptr("x")})
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	translation, err := f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "fr", Value: ptr("Titre")})
	require.NoError(t, err)
	assert.Equal(t, "article", translation.Collection)
	replaced, err := f.translations.SetTranslation(ctx, SetTranslationRequest{ItemID: item.ID, Field: "title", Language: "fr", Value: ptr("Intitulé")})
	require.NoError(t, err)
	assert.Equal(t, translation.ID, replaced.ID)
	require.NotNil(t, replaced.Value)
	assert.Equal(t, "Intitulé", *replaced.Value)

	stored, err := f.translations.ListTranslations(ctx, item.ID, "fr")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, translation.ID, stored[0].ID)
}
