package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncStatusTransitions(t *testing.T) {
	tests := []struct {
		from  SyncStatus
		to    SyncStatus
		allow bool
	}{
		{SyncPending, SyncSynced, true},
		{SyncPending, SyncFailed, true},
		{SyncPending, SyncOutOfSync, false},
		{SyncSynced, SyncOutOfSync, true},
		{SyncSynced, SyncFailed, false},
		{SyncOutOfSync, SyncSynced, true},
		{SyncOutOfSync, SyncFailed, true},
		{SyncFailed, SyncSynced, true},
		{SyncFailed, SyncFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allow, tt.from.CanTransitionTo(tt.to))
		})
	}
}
