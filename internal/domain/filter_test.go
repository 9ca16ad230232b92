package domain

import "testing"

func TestEntryFilter_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   EntryFilter
		want EntryFilter
	}{
		{
			name: "zero value gets defaults",
			in:   EntryFilter{},
			want: EntryFilter{SortOrder: SortOrderDESC, Limit: defaultLimit},
		},
		{
			name: "valid values untouched",
			in:   EntryFilter{SortOrder: SortOrderASC, Limit: 10, Offset: 20},
			want: EntryFilter{SortOrder: SortOrderASC, Limit: 10, Offset: 20},
		},
		{
			name: "limit clamped to max",
			in:   EntryFilter{Limit: 10000},
			want: EntryFilter{SortOrder: SortOrderDESC, Limit: maxLimit},
		},
		{
			name: "negative values reset",
			in:   EntryFilter{Limit: -1, Offset: -5},
			want: EntryFilter{SortOrder: SortOrderDESC, Limit: defaultLimit},
		},
		{
			name: "garbage sort order falls back to desc",
			in:   EntryFilter{SortOrder: "sideways", Limit: 5},
			want: EntryFilter{SortOrder: SortOrderDESC, Limit: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := tt.in
			f.Normalize()
			if f.SortOrder != tt.want.SortOrder || f.Limit != tt.want.Limit || f.Offset != tt.want.Offset {
				t.Errorf("Normalize() = %+v, want %+v", f, tt.want)
			}
		})
	}
}
