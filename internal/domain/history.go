package domain

import "time"

// HistoryEntry is an immutable progress snapshot for a task. Entries
// are append-only: once written they are never mutated or deleted.
// Each entry records the author's perceived completion at a point in
// time, not a delta. The owning task's ProgressPercent is written
// independently; the ledger never updates the task row itself.
type HistoryEntry struct {
	ID                   string
	TaskID               string
	UserID               string
	Comment              string
	CompletionPercentage int
	CreatedAt            time.Time
}

// HistoryEntryWithAuthor is a history entry joined with author identity
// for the activity timeline.
type HistoryEntryWithAuthor struct {
	HistoryEntry
	AuthorName  string
	AuthorEmail string
}
