package repository

import "time"

// SyncState carries the denormalized fields the syncer refreshes after a
// successful sync. Nil fields are left untouched, so a transient provider gap
// never erases a previously known value.
type SyncState struct {
	Forum             *string
	LastActuationDate *time.Time
	LastActuationDesc *string
}
