package helpers

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/honorsociety/internal/app/models"
)

// likeEscaper makes LIKE wildcards in a search term match literally.
// Backslash is PostgreSQL's default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchCondition builds a case-insensitive substring match of term across
// the given columns. It returns nil when term is empty.
func SearchCondition(term string, columns ...string) squirrel.Sqlizer {
	if term == "" || len(columns) == 0 {
		return nil
	}
	pattern := "%" + likeEscaper.Replace(term) + "%"
	or := squirrel.Or{}
	for _, col := range columns {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}

// OrderByClauses maps validated sort fields onto SQL ORDER BY terms through
// columns, then appends tieBreaker so paging is stable.
func OrderByClauses(ordering []models.SortField, columns map[string]string, tieBreaker string) []string {
	clauses := make([]string, 0, len(ordering)+1)
	for _, f := range ordering {
		col, ok := columns[f.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", col, dir))
	}
	if tieBreaker != "" {
		clauses = append(clauses, tieBreaker+" ASC")
	}
	return clauses
}
