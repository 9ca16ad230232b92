package entry

import (
	"strings"

	"github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

// likeEscaper quotes LIKE metacharacters so a search term matches itself
// as a literal substring. Backslash is the Postgres default escape char.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery translates an EntryFilter into a squirrel SELECT. The filter
// must already be normalized. Kept separate from Repo so tests can assert on
// the generated SQL without a database.
func buildListQuery(f domain.EntryFilter) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select(columns...).
		From(table)

	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}

	if f.Search != nil && *f.Search != "" {
		pattern := "%" + likeEscaper.Replace(*f.Search) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		})
	}

	if f.ExcludePendingMilestones {
		q = q.Where(squirrel.Expr(
			"NOT (type = ? AND status = ?)",
			domain.EntryTypeMilestone, domain.EntryStatusPending,
		))
	}

	// id is the tiebreak so pages stay disjoint when entries share a date.
	q = q.OrderBy("date "+f.SortOrder, "id "+f.SortOrder).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	return q
}
