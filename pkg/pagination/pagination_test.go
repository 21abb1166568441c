package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ComputesPages(t *testing.T) {
	m := New(25, 2, 10)

	assert.Equal(t, 25, m.Total)
	assert.Equal(t, 2, m.Page)
	assert.Equal(t, 10, m.Limit)
	assert.Equal(t, 3, m.Pages)
}

func TestNew_ClampsInvalidInput(t *testing.T) {
	m := New(5, 0, -3)

	assert.Equal(t, 1, m.Page)
	assert.Equal(t, 10, m.Limit)
	assert.Equal(t, 1, m.Pages)

	m = New(5, 1, 500)
	assert.Equal(t, 10, m.Limit)
}

func TestNew_EmptyCollection(t *testing.T) {
	m := New(0, 1, 10)

	assert.Equal(t, 0, m.Pages)
	from, to := m.ShowingRange()
	assert.Equal(t, 0, from)
	assert.Equal(t, 0, to)
}

func TestShowingRange_MiddlePage(t *testing.T) {
	m := New(25, 2, 10)

	from, to := m.ShowingRange()
	assert.Equal(t, 11, from)
	assert.Equal(t, 20, to)
}

func TestShowingRange_LastPartialPage(t *testing.T) {
	m := New(25, 3, 10)

	from, to := m.ShowingRange()
	assert.Equal(t, 21, from)
	assert.Equal(t, 25, to)
}

func TestShowingRange_PagePastEnd(t *testing.T) {
	m := New(10, 5, 10)

	from, to := m.ShowingRange()
	assert.Equal(t, 0, from)
	assert.Equal(t, 0, to)
}

func TestBounds(t *testing.T) {
	m := New(25, 1, 10)
	assert.False(t, m.HasPrevious())
	assert.True(t, m.HasNext())

	m = New(25, 3, 10)
	assert.True(t, m.HasPrevious())
	assert.False(t, m.HasNext())

	m = New(25, 2, 10)
	assert.True(t, m.HasPrevious())
	assert.True(t, m.HasNext())
}
