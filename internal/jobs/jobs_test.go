package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/model"
	"github.com/emrgen/cms/internal/store"
	"github.com/emrgen/cms/internal/tester"
	"github.com/emrgen/cms/internal/value"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	mu    sync.Mutex
	items map[string]*model.Content
}

func newRecordingCache() *recordingCache {
	return &recordingCache{items: make(map[string]*model.Content)}
}

func (r *recordingCache) GetContent(ctx context.Context, id string) (*model.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *recordingCache) SetContent(ctx context.Context, content *model.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[content.ID] = content
	return nil
}

func (r *recordingCache) DeleteContent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func seed(t *testing.T, s store.Store, collection string, n int, at time.Time) []string {
	t.Helper()
	ctx := context.Background()

	_, err := s.GetCollection(ctx, collection)
	if err != nil {
		require.NoError(t, s.CreateCollection(ctx, &model.Collection{
			ID:        uuid.New().String(),
			Name:      collection,
			CreatedAt: at,
		}))
	}

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New().String()
		require.NoError(t, s.CreateContent(ctx, &model.Content{
			ID:           id,
			Collection:   collection,
			Data:         value.MustFrom(map[string]any{"n": i}),
			Status:       model.StatusDraft,
			IsDraft:      true,
			CreatedAt:    at,
			LastModified: at.Add(time.Duration(i) * time.Second),
			Version:      1,
		}))
		ids = append(ids, id)
	}
	return ids
}

func TestCacheSyncTask_Sync(t *testing.T) {
	s := store.NewGormStore(tester.TestDB(t))
	c := newRecordingCache()
	task := NewCacheSyncTask("@every 1m", s, c)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := seed(t, s, "article", 3, start)

	synced, err := task.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, synced)
	for _, id := range ids {
		cached, _ := c.GetContent(ctx, id)
		assert.NotNil(t, cached)
	}

	// nothing changed since the last run
	synced, err = task.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, synced)

	seed(t, s, "article", 1, start.Add(time.Hour))
	synced, err = task.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	assert.Equal(t, "cache_sync", task.Name())
	assert.Equal(t, "@every 1m", task.Schedule())
}

func TestCacheSyncTask_SharedTimestamps(t *testing.T) {
	s := store.NewGormStore(tester.TestDB(t))
	c := newRecordingCache()
	task := NewCacheSyncTask("@every 1m", s, c)
	task.batch = 2
	ctx := context.Background()

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateCollection(ctx, &model.Collection{ID: uuid.New().String(), Name: "article", CreatedAt: at}))
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateContent(ctx, &model.Content{
			ID:           uuid.New().String(),
			Collection:   "article",
			Data:         value.MustFrom(map[string]any{"n": i}),
			Status:       model.StatusDraft,
			IsDraft:      true,
			CreatedAt:    at,
			LastModified: at,
			Version:      1,
		}))
	}

	synced, err := task.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, synced)
	assert.Len(t, c.items, 5)

	synced, err = task.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, synced)
}

// deletingStore deletes the first listed item, evicting it from the cache,
// after the listing returned.
type deletingStore struct {
	store.Store
	cache cache.ContentCache
	once  sync.Once
}

func (d *deletingStore) ListContentModifiedSince(ctx context.Context, since time.Time, afterID string, limit int) ([]*model.Content, error) {
	items, err := d.Store.ListContentModifiedSince(ctx, since, afterID, limit)
	if err != nil || len(items) == 0 {
		return items, err
	}
	d.once.Do(func() {
		if err = d.Store.DeleteContent(ctx, items[0].ID); err == nil {
			err = d.cache.DeleteContent(ctx, items[0].ID)
		}
	})
	return items, err
}

func TestCacheSyncTask_SkipsDeletedItems(t *testing.T) {
	s := store.NewGormStore(tester.TestDB(t))
	c := cache.NewMemoryContentCache()
	ctx := context.Background()

	ids := seed(t, s, "article", 2, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	task := NewCacheSyncTask("@every 1m", &deletingStore{Store: s, cache: c}, c)

	_, err := task.Sync(ctx)
	require.NoError(t, err)

	deleted, err := c.GetContent(ctx, ids[0])
	require.NoError(t, err)
	assert.Nil(t, deleted)

	kept, err := c.GetContent(ctx, ids[1])
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestStatsTask_Collect(t *testing.T) {
	s := store.NewGormStore(tester.TestDB(t))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed(t, s, "article", 2, start)
	seed(t, s, "page", 1, start)

	task := NewStatsTask("@every 5m", s)
	counts, err := task.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"article": 2, "page": 1}, counts)

	task.Run()
}

type countingJob struct {
	runs atomic.Int32
}

func (c *countingJob) Run() {
	c.runs.Add(1)
}

func (c *countingJob) Schedule() string {
	return "@every 1s"
}

func TestTaskExecutor_Run(t *testing.T) {
	job := &countingJob{}
	executor := NewTaskExecutor(nil, []CronJob{job})
	require.NoError(t, executor.Run())
	defer executor.Stop()

	assert.Eventually(t, func() bool {
		return job.runs.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestTaskExecutor_InvalidSchedule(t *testing.T) {
	executor := NewTaskExecutor(nil, []CronJob{NewStatsTask("not a schedule", nil)})
	assert.Error(t, executor.Run())
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
	runs    atomic.Int32
}

func (b *blockingJob) Name() string {
	return "blocking"
}

func (b *blockingJob) Run() {
	b.runs.Add(1)
	close(b.started)
	<-b.release
}

func TestTaskExecutor_SkipsOverlappingRuns(t *testing.T) {
	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	executor := NewTaskExecutor([]Job{job}, nil)

	done := make(chan struct{})
	go func() {
		executor.runOnce(jobName(job), job)
		close(done)
	}()
	<-job.started

	// the first run still holds the slot
	executor.runOnce(jobName(job), job)
	assert.Equal(t, int32(1), job.runs.Load())

	close(job.release)
	<-done
}

type panickingJob struct{}

func (panickingJob) Run() {
	panic("boom")
}

func TestTaskExecutor_RecoversPanics(t *testing.T) {
	executor := NewTaskExecutor(nil, nil)
	assert.NotPanics(t, func() {
		executor.runOnce(jobName(panickingJob{}), panickingJob{})
	})
	assert.False(t, executor.running.Contains("jobs.panickingJob"))
}
