package domain

// EntryFilter contains filtering, ordering and pagination parameters for
// timeline queries. The zero value means "everything, newest first".
type EntryFilter struct {
	// Type restricts results to a single entry type. nil means no filter.
	Type *EntryType

	// Search performs a case-insensitive substring match on title OR content.
	// nil or empty string means no text filter.
	Search *string

	// ExcludePendingMilestones drops rows where type=milestone AND
	// status=pending, i.e. planned-but-unachieved milestones.
	ExcludePendingMilestones bool

	// SortOrder: "ASC" or "DESC" on the entry date. Default: "DESC".
	SortOrder string

	// Limit is the page size. Default: 50, max: 200.
	Limit int

	// Offset is the number of entries to skip; callers paginating by page
	// number compute offset = (page-1)*limit.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200

	SortOrderASC  = "ASC"
	SortOrderDESC = "DESC"
)

// Normalize applies defaults and clamps values.
func (f *EntryFilter) Normalize() {
	switch f.SortOrder {
	case SortOrderASC, SortOrderDESC:
		// valid
	default:
		f.SortOrder = SortOrderDESC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}
