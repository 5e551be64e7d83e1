package database

import (
	"fmt"
	"strings"
)

type condition struct {
	column string
	value  string
}

// whereClause builds a WHERE fragment from the non-empty conditions.
// Empty filter params never reach the SQL, so uuid columns are only
// compared against values the caller actually supplied; Postgres does
// not guarantee short-circuit order for OR quals, which rules out the
// `($1 = '' OR col = $1::uuid)` pattern.
func whereClause(conds ...condition) (string, []interface{}) {
	var parts []string
	var args []interface{}

	for _, c := range conds {
		if c.value == "" {
			continue
		}
		args = append(args, c.value)
		parts = append(parts, fmt.Sprintf("%s = $%d", c.column, len(args)))
	}

	if len(parts) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}
