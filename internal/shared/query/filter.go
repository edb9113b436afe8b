// Package query holds paging and sorting parameters shared by list queries.
package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

// Direction normalizes SortOrder to "asc" or "desc", defaulting to desc.
func (f SortFilter) Direction() string {
	if strings.EqualFold(f.SortOrder, "asc") {
		return "asc"
	}
	return "desc"
}
