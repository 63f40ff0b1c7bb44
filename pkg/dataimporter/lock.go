package dataimporter

import "errors"

var ErrSyncAlreadyInProgress = errors.New("synchronisation already in progress")

// SyncLock is the single-slot guard around the bulk re-synchronisation job.
// A second trigger while a run is executing is rejected immediately, never
// queued
type SyncLock struct {
	slot chan struct{}
}

func NewSyncLock() *SyncLock {
	return &SyncLock{
		slot: make(chan struct{}, 1),
	}
}

func (l *SyncLock) TryAcquire() bool {
	select {
	case l.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

func (l *SyncLock) Release() {
	select {
	case <-l.slot:
	default:
	}
}
