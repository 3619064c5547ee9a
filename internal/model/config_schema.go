package model

import "time"

// SyncStatus tracks how a ConfigSchema row relates to its mirrored copy in
// the artifact registry.
type SyncStatus string

const (
	SyncPending   SyncStatus = "PENDING"
	SyncSynced    SyncStatus = "SYNCED"
	SyncFailed    SyncStatus = "FAILED"
	SyncOutOfSync SyncStatus = "OUT_OF_SYNC"
)

// CanTransitionTo enforces the sync-status state machine: PENDING ->
// {SYNCED, FAILED}; SYNCED -> OUT_OF_SYNC; OUT_OF_SYNC -> {SYNCED, FAILED};
// FAILED -> {SYNCED, FAILED}.
func (s SyncStatus) CanTransitionTo(next SyncStatus) bool {
	switch s {
	case SyncPending:
		return next == SyncSynced || next == SyncFailed
	case SyncSynced:
		return next == SyncOutOfSync
	case SyncOutOfSync:
		return next == SyncSynced || next == SyncFailed
	case SyncFailed:
		return next == SyncSynced || next == SyncFailed
	default:
		return false
	}
}

// ConfigSchema is a versioned JSON schema owned by a service.
type ConfigSchema struct {
	SchemaID         string
	ServiceName      string
	SchemaVersion    string
	JSONSchema       string
	CreatedAt        time.Time
	CreatedBy        string
	ArtifactID       string
	ArtifactGlobalID int64
	SyncStatus       SyncStatus
	LastSyncAttempt  time.Time
	SyncError        string
}
