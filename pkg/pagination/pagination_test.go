package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	p := FromQuery("3", "20")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 40, p.Offset())

	p = FromQuery("", "abc")
	assert.Equal(t, DefaultPagination(), p)

	p = FromQuery("-2", "1000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 15, 0)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)

	assert.NotNil(t, NewPaginatedResult[int](nil, pg).Items)
}
