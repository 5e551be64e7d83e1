package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	t.Run("Empty filter produces no WHERE at all", func(t *testing.T) {
		where, args := whereClause(
			condition{"contact_id", ""},
			condition{"company_id", ""},
		)

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("Single filter binds one placeholder", func(t *testing.T) {
		where, args := whereClause(
			condition{"contact_id", "ct-1"},
			condition{"company_id", ""},
		)

		assert.Equal(t, "WHERE contact_id = $1", where)
		assert.Equal(t, []interface{}{"ct-1"}, args)
	})

	t.Run("Skipped conditions keep placeholders contiguous", func(t *testing.T) {
		where, args := whereClause(
			condition{"contact_id", ""},
			condition{"company_id", "co-1"},
			condition{"status", "PENDING"},
		)

		assert.Equal(t, "WHERE company_id = $1 AND status = $2", where)
		assert.Equal(t, []interface{}{"co-1", "PENDING"}, args)
	})

	t.Run("Empty values never reach the SQL", func(t *testing.T) {
		// uuid columns must not see '' through any evaluation order.
		where, args := whereClause(
			condition{"contact_id", ""},
			condition{"status", "PENDING"},
		)

		assert.NotContains(t, where, "contact_id")
		assert.Len(t, args, 1)
	})
}
