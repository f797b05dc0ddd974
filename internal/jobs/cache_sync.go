package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/emrgen/cms/internal/cache"
	"github.com/emrgen/cms/internal/store"
	"github.com/sirupsen/logrus"
)

const cacheSyncBatch = 200

// CacheSyncTask copies recently modified content into the cache so reads of
// fresh items hit it even when they were written by another node.
type CacheSyncTask struct {
	mu    sync.Mutex
	store store.ContentStore
	cache cache.ContentCache
	cron  string
	batch int
	// cursor of the last synced item
	since   time.Time
	sinceID string
}

func NewCacheSyncTask(interval string, store store.ContentStore, cache cache.ContentCache) *CacheSyncTask {
	return &CacheSyncTask{
		store: store,
		cache: cache,
		cron:  interval,
		batch: cacheSyncBatch,
	}
}

func (c *CacheSyncTask) Name() string {
	return "cache_sync"
}

func (c *CacheSyncTask) Schedule() string {
	return c.cron
}

func (c *CacheSyncTask) Run() {
	synced, err := c.Sync(context.Background())
	if err != nil {
		logrus.Errorf("cache sync failed: %v", err)
		return
	}
	if synced > 0 {
		logrus.Debugf("cache sync: %d items", synced)
	}
}

// Sync caches every item modified since the previous sync and returns how many
// were written.
func (c *CacheSyncTask) Sync(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	synced := 0
	for {
		items, err := c.store.ListContentModifiedSince(ctx, c.since, c.sinceID, c.batch)
		if err != nil {
			return synced, err
		}

		for _, item := range items {
			if err := c.cache.SetContent(ctx, item); err != nil {
				return synced, err
			}
			c.since, c.sinceID = item.LastModified, item.ID
			synced++
		}

		if len(items) < c.batch {
			return synced, nil
		}
	}
}
