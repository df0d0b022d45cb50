// Package iocache keeps tracker snapshots and run history in SQL stores.
package iocache

import (
	"sync"

	"github.com/mythster/mythster-JiraSprintDashboard/internal/contract"
)

// CacheStoreManager manages the issue cache and the run history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	issues       contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetIssueStore returns the issue snapshot CacheStore.
func (mgr *CacheStoreManager) GetIssueStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.issues
}

// GetRunStore returns the run history RunStore.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
