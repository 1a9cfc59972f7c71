package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotDeleted filters out soft-deleted rows for queries built with Table() or
// raw joins, where gorm's automatic soft delete clause is not applied.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// NotDeletedWithAlias is NotDeleted for a joined table alias.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}

// ForUpdate adds a row lock (SELECT ... FOR UPDATE). Dialects without row
// locking, such as sqlite, ignore it.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
}

// Paginate applies bound LIMIT/OFFSET values.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}
