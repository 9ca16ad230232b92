package domain

import "time"

// Entry is a dated journal record on the family timeline. A "daily" entry is
// an ordinary note; a "milestone" marks an achievement and may be planned
// (pending) or achieved (completed).
type Entry struct {
	ID        int64       `db:"id"`
	Title     *string     `db:"title"`
	Content   string      `db:"content"`
	Date      time.Time   `db:"date"`
	Type      EntryType   `db:"type"`
	Status    EntryStatus `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// IsPendingMilestone reports whether the entry is a planned, not-yet-achieved
// milestone. Every other type/status combination is realized content.
func (e *Entry) IsPendingMilestone() bool {
	return e.Type == EntryTypeMilestone && e.Status == EntryStatusPending
}

// Media is a photo attached to an entry. StorageKey points at the blob in the
// object store; the pairing is best-effort (the blob may outlive the row, the
// row must never outlive a delete request).
type Media struct {
	ID         int64      `db:"id"`
	EntryID    int64      `db:"entry_id"`
	StorageKey string     `db:"storage_key"`
	FileType   string     `db:"file_type"`
	TakenAt    *time.Time `db:"taken_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// EntryUpdate carries a partial field set for an entry update. Nil fields are
// left untouched; updated_at is stamped unconditionally.
type EntryUpdate struct {
	Title   *string
	Content *string
	Date    *time.Time
	Type    *EntryType
	Status  *EntryStatus
}
