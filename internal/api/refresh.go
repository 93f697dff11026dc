package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mlebrun/sailcast/internal/planner"
)

// snapshotCache holds the last good conditions snapshot for the API.
// Snapshots older than the staleness bound are not served.
type snapshotCache struct {
	mu        sync.RWMutex
	snapshot  *planner.Snapshot
	fetchedAt time.Time
}

const snapshotMaxAge = 30 * time.Minute

func (c *snapshotCache) get() *planner.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || time.Since(c.fetchedAt) > snapshotMaxAge {
		return nil
	}
	return c.snapshot
}

func (c *snapshotCache) set(snapshot *planner.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.fetchedAt = time.Now()
}

// StartRefresher refreshes the conditions snapshot on the given cron
// schedule (e.g. "*/10 * * * *"). The first refresh runs immediately.
// Stop the returned cron to end the background refresh.
func (s *Server) StartRefresher(ctx context.Context, schedule string) (*cron.Cron, error) {
	refresh := func() {
		refreshCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		snapshot, err := s.planner.CurrentSnapshot(refreshCtx)
		if err != nil {
			s.log.Warn("snapshot refresh failed", "err", err)
			return
		}
		s.snapshot.set(snapshot)
		s.log.Debug("snapshot refreshed", "at", snapshot.Time)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, refresh); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	go refresh()
	c.Start()
	return c, nil
}
