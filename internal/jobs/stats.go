package jobs

import (
	"context"

	"github.com/emrgen/cms/internal/store"
	"github.com/sirupsen/logrus"
)

// StatsTask logs the number of items per collection.
type StatsTask struct {
	store store.Store
	cron  string
}

func NewStatsTask(interval string, store store.Store) *StatsTask {
	return &StatsTask{store: store, cron: interval}
}

func (s *StatsTask) Name() string {
	return "stats"
}

func (s *StatsTask) Schedule() string {
	return s.cron
}

func (s *StatsTask) Run() {
	counts, err := s.Collect(context.Background())
	if err != nil {
		logrus.Errorf("stats task failed: %v", err)
		return
	}

	fields := logrus.Fields{}
	for name, count := range counts {
		fields[name] = count
	}
	logrus.WithFields(fields).Info("content per collection")
}

// Collect counts the items of every collection, hidden ones included.
func (s *StatsTask) Collect(ctx context.Context) (map[string]int64, error) {
	collections, err := s.store.ListCollections(ctx, true)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(collections))
	for _, collection := range collections {
		count, err := s.store.CountContent(ctx, collection.Name)
		if err != nil {
			return nil, err
		}
		counts[collection.Name] = count
	}

	return counts, nil
}
