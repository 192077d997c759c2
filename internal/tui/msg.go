package tui

import "time"

// MsgSaveState carries the autosaver's latest state into the status bar.
type MsgSaveState struct {
	State string
	Err   error
}

// MsgExternalChange signals that another process modified the database file
// while this document is open.
type MsgExternalChange struct {
	At time.Time
}

// MsgReloaded replaces the in-memory document after an external-change
// reload.
type MsgReloaded struct {
	Err error
}

// MsgTick drives periodic refreshes (save status polling).
type MsgTick struct {
	Time time.Time
}
