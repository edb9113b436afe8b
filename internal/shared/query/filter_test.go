package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFilter(t *testing.T) {
	assert.Equal(t, 0, PageFilter{}.Offset())
	assert.Equal(t, 20, PageFilter{}.Limit())
	assert.Equal(t, 100, PageFilter{PageSize: 500}.Limit())
	assert.Equal(t, 40, PageFilter{Page: 3, PageSize: 20}.Offset())
}

func TestSortFilter_Direction(t *testing.T) {
	assert.Equal(t, "asc", SortFilter{SortOrder: "ASC"}.Direction())
	assert.Equal(t, "desc", SortFilter{SortOrder: ""}.Direction())
	assert.Equal(t, "desc", SortFilter{SortOrder: "sideways"}.Direction())
}
