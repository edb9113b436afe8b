package db

import (
	"gorm.io/gorm"
)

// Paginate is a GORM scope applying LIMIT/OFFSET for a 1-based page.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderBy orders by column only when it appears in allowed, falling back to
// fallback otherwise. Column names never come from user input unchecked.
func OrderBy(column, order string, allowed map[string]bool, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !allowed[column] {
			return db.Order(fallback)
		}
		if order != "asc" {
			order = "desc"
		}
		return db.Order(column + " " + order)
	}
}
