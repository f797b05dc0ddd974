package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/queue"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/tester"
	"github.com/stretchr/testify/require"
)

// fakeClock hands out strictly increasing timestamps one second apart.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = f.cur.Add(time.Second)
	return f.cur
}

type fixture struct {
	store        store.Store
	registry     *SchemaRegistry
	content      *ContentService
	translations *TranslationService
	taxonomy     *TaxonomyService
	navigation   *NavigationService
	events       *queue.MemoryQueue
	clock        *fakeClock
}

func newFixture(t *testing.T, options ContentOptions) *fixture {
	t.Helper()

	s := store.NewGormStore(tester.TestDB(t))
	clock := newFakeClock()
	events := queue.NewMemoryQueue()

	return &fixture{
		store:        s,
		registry:     NewSchemaRegistry(s).WithClock(clock.Now),
		content:      NewContentService(s, cache.NewNopContentCache(), events, options).WithClock(clock.Now),
		translations: NewTranslationService(s, options.Strict),
		taxonomy:     NewTaxonomyService(s).WithClock(clock.Now),
		navigation:   NewNavigationService(s).WithClock(clock.Now),
		events:       events,
		clock:        clock,
	}
}

// articles defines the "article" collection with a title and a body field.
func (f *fixture) articles(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.registry.DefineCollection(ctx, DefineCollectionRequest{Name: "article"})
	require.NoError(t, err)
	_, err = f.registry.DefineField(ctx, DefineFieldRequest{Collection: "article", Field: "title", Type: "string"})
	require.NoError(t, err)
	_, err = f.registry.DefineField(ctx, DefineFieldRequest{Collection: "article", Field: "body", Type: "text"})
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
