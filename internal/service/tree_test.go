package service

import (
	"context"
	"testing"

	"github.com/emrgen/cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termNames(terms []*model.Taxonomy) []string {
	names := make([]string, len(terms))
	for i, term := range terms {
		names[i] = term.Term
	}
	return names
}

func nodeLabels(nodes []*model.Navigation) []string {
	labels := make([]string, len(nodes))
	for i, node := range nodes {
		labels[i] = node.Label
	}
	return labels
}

func TestTaxonomyService(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	ctx := context.Background()

	insert := func(vocabulary, term string, parent *model.Taxonomy) *model.Taxonomy {
		t.Helper()
		req := InsertTermRequest{Vocabulary: vocabulary, Term: term}
		if parent != nil {
			req.ParentID = &parent.ID
		}
		node, err := f.taxonomy.InsertTerm(ctx, req)
		require.NoError(t, err)
		return node
	}

	tech := insert("topics", "tech", nil)
	golang := insert("topics", "go", tech)
	rust := insert("topics", "rust", tech)
	generics := insert("topics", "generics", golang)
	insert("topics", "art", nil)
	red := insert("colors", "red", nil)

	children, err := f.taxonomy.ListChildren(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, termNames(children))
	assert.Equal(t, int64(0), golang.Position)
	assert.Equal(t, int64(1), rust.Position)

	roots, err := f.taxonomy.ListRoots(ctx, "topics")
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "art"}, termNames(roots))

	t.Run("parent must exist", func(t *testing.T) {
		_, err := f.taxonomy.InsertTerm(ctx, InsertTermRequest{Vocabulary: "topics", Term: "x", ParentID: ptr("missing")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("parent must share the vocabulary", func(t *testing.T) {
		_, err := f.taxonomy.InsertTerm(ctx, InsertTermRequest{Vocabulary: "topics", Term: "x", ParentID: &red.ID})
		assert.ErrorIs(t, err, ErrVocabularyMismatch)
		_, err = f.taxonomy.MoveTerm(ctx, golang.ID, &red.ID)
		assert.ErrorIs(t, err, ErrVocabularyMismatch)
	})

	t.Run("moves that would create a cycle fail", func(t *testing.T) {
		_, err := f.taxonomy.MoveTerm(ctx, tech.ID, &generics.ID)
		assert.ErrorIs(t, err, ErrCycle)
		_, err = f.taxonomy.MoveTerm(ctx, tech.ID, &tech.ID)
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("move appends to the new siblings", func(t *testing.T) {
		moved, err := f.taxonomy.MoveTerm(ctx, golang.ID, nil)
		require.NoError(t, err)
		assert.Nil(t, moved.ParentID)

		roots, err := f.taxonomy.ListRoots(ctx, "topics")
		require.NoError(t, err)
		assert.Equal(t, []string{"tech", "art", "go"}, termNames(roots))

		_, err = f.taxonomy.MoveTerm(ctx, golang.ID, &tech.ID)
		require.NoError(t, err)
		children, err := f.taxonomy.ListChildren(ctx, tech.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"rust", "go"}, termNames(children))
	})

	t.Run("delete", func(t *testing.T) {
		_, err := f.taxonomy.DeleteTerm(ctx, tech.ID, false)
		assert.ErrorIs(t, err, ErrHasChildren)

		deleted, err := f.taxonomy.DeleteTerm(ctx, tech.ID, true)
		require.NoError(t, err)
		assert.Equal(t, 4, deleted)

		_, err = f.taxonomy.ListChildren(ctx, generics.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		roots, err := f.taxonomy.ListRoots(ctx, "topics")
		require.NoError(t, err)
		assert.Equal(t, []string{"art"}, termNames(roots))

		_, err = f.taxonomy.DeleteTerm(ctx, tech.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNavigationService(t *testing.T) {
	f := newFixture(t, ContentOptions{})
	ctx := context.Background()

	insert := func(label string, order int, parent *model.Navigation, visible bool) *model.Navigation {
		t.Helper()
		req := InsertNodeRequest{Label: label, Path: "/" + label, Order: order, Visible: &visible}
		if parent != nil {
			req.ParentID = &parent.ID
		}
		node, err := f.navigation.InsertNode(ctx, req)
		require.NoError(t, err)
		return node
	}

	home := insert("home", 0, nil, true)
	docs := insert("docs", 1, nil, true)
	guides := insert("guides", 2, docs, true)
	api := insert("api", 1, docs, true)
	intro := insert("intro", 0, guides, true)
	insert("beta", 0, docs, false)
	insert("about", 1, nil, true)

	children, err := f.navigation.ListChildren(ctx, &docs.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "api", "guides"}, nodeLabels(children))

	roots, err := f.navigation.ListChildren(ctx, nil)
	require.NoError(t, err)
	// equal order falls back to the label
	assert.Equal(t, []string{"home", "about", "docs"}, nodeLabels(roots))

	_, err = f.navigation.ListChildren(ctx, ptr("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("tree", func(t *testing.T) {
		tree, err := f.navigation.Tree(ctx, false)
		require.NoError(t, err)
		require.Equal(t, []string{"home", "about", "docs"}, nodeLabels(tree))
		assert.Equal(t, []string{"api", "guides"}, nodeLabels(tree[2].Children))
		assert.Equal(t, []string{"intro"}, nodeLabels(tree[2].Children[1].Children))

		full, err := f.navigation.Tree(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"beta", "api", "guides"}, nodeLabels(full[2].Children))
	})

	t.Run("move", func(t *testing.T) {
		_, err := f.navigation.MoveNode(ctx, MoveNodeRequest{ID: docs.ID, ParentID: &intro.ID})
		assert.ErrorIs(t, err, ErrCycle)

		_, err = f.navigation.MoveNode(ctx, MoveNodeRequest{ID: api.ID, ParentID: ptr("missing")})
		assert.ErrorIs(t, err, ErrNotFound)

		moved, err := f.navigation.MoveNode(ctx, MoveNodeRequest{ID: api.ID, ParentID: &home.ID, Order: ptr(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, moved.Order)

		children, err := f.navigation.ListChildren(ctx, &home.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"api"}, nodeLabels(children))
	})

	t.Run("delete", func(t *testing.T) {
		_, err := f.navigation.DeleteNode(ctx, docs.ID, false)
		assert.ErrorIs(t, err, ErrHasChildren)

		deleted, err := f.navigation.DeleteNode(ctx, docs.ID, true)
		require.NoError(t, err)
		assert.Equal(t, 4, deleted)

		_, err = f.navigation.DeleteNode(ctx, intro.ID, false)
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err = f.navigation.DeleteNode(ctx, api.ID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})
}
