package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
	"github.com/mythster/mythster-JiraSprintDashboard/schema"
)

// currentCacheVersion defines the version of the cached issue snapshot format
const currentCacheVersion = 1

// cacheTTL bounds how long a snapshot of a closed sprint is trusted
const cacheTTL = 7 * 24 * time.Hour

// CachedSprintIssues returns the issues of a sprint, reading closed sprints
// from the issue store when a fresh snapshot exists. Active sprints still
// change, so they always go to the tracker.
func CachedSprintIssues(ctx context.Context, cfg *contract.Config, client contract.TrackerClient, mgr contract.CacheManager, sprint schema.Sprint) ([]schema.Issue, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetIssueStore()
	}
	if store == nil || sprint.State != schema.ClosedState {
		return client.SprintIssues(ctx, sprint.ID)
	}

	key := generateCacheKey(cfg, client, sprint)
	if issues, ok := checkCacheHit(store, key, time.Now()); ok {
		contract.Logger().Debug("Issue cache hit", "sprint", sprint.Name)
		return issues, nil
	}
	return fetchAndStore(ctx, client, store, key, sprint)
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(store contract.CacheStore, key string, now time.Time) ([]schema.Issue, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}
	if version != currentCacheVersion || now.Sub(time.Unix(ts, 0)) > cacheTTL {
		return nil, false // stale or version mismatch
	}
	var issues []schema.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, false
	}
	return issues, true
}

// fetchAndStore fetches the issues and stores the snapshot
func fetchAndStore(ctx context.Context, client contract.TrackerClient, store contract.CacheStore, key string, sprint schema.Sprint) ([]schema.Issue, error) {
	issues, err := client.SprintIssues(ctx, sprint.ID)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(issues)
	if err == nil {
		err = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Could not cache issues of sprint %q", sprint.Name), err)
	}
	return issues, nil
}

// generateCacheKey creates a unique key for one sprint of one board on one server
func generateCacheKey(cfg *contract.Config, client contract.TrackerClient, sprint schema.Sprint) string {
	key := fmt.Sprintf("%s:%d:%d:%s:%s", client.ServerID(), cfg.BoardID, sprint.ID, cfg.StoryPointsField, cfg.StoryPointsLabel)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
