package domain

// EntryType distinguishes ordinary daily notes from milestones.
type EntryType string

const (
	EntryTypeDaily     EntryType = "daily"
	EntryTypeMilestone EntryType = "milestone"
)

func (t EntryType) String() string { return string(t) }

func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeDaily, EntryTypeMilestone:
		return true
	}
	return false
}

// EntryStatus marks whether an entry is realized or still planned. Only the
// milestone+pending combination means "planned"; everything else is content
// that already happened.
type EntryStatus string

const (
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusPending   EntryStatus = "pending"
)

func (s EntryStatus) String() string { return string(s) }

func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusCompleted, EntryStatusPending:
		return true
	}
	return false
}
