package projectlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate_Small(t *testing.T) {
	p := Paginate(25, 2, 10)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 2, p.CurrentPage)
	require.Equal(t, []int{1, 2, 3}, p.Pages)
	require.Equal(t, 10, p.StartIndex)
	require.Equal(t, 19, p.EndIndex)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	p := Paginate(25, 3, 10)
	require.Equal(t, 20, p.StartIndex)
	require.Equal(t, 24, p.EndIndex)
}

func TestPaginate_Window(t *testing.T) {
	require.Equal(t, 1, Paginate(300, 3, 10).StartPage)
	require.Equal(t, 10, Paginate(300, 3, 10).EndPage)

	mid := Paginate(300, 15, 10)
	require.Equal(t, 10, mid.StartPage)
	require.Equal(t, 19, mid.EndPage)
	require.Len(t, mid.Pages, 10)

	end := Paginate(300, 29, 10)
	require.Equal(t, 21, end.StartPage)
	require.Equal(t, 30, end.EndPage)
}

func TestPaginate_Clamps(t *testing.T) {
	require.Equal(t, 3, Paginate(25, 9, 10).CurrentPage)
	require.Equal(t, 1, Paginate(25, -1, 10).CurrentPage)
	require.Equal(t, 10, Paginate(25, 1, 0).PageSize)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(0, 1, 10)
	require.Equal(t, 0, p.TotalPages)
	require.Equal(t, -1, p.StartIndex)
	require.Equal(t, -1, p.EndIndex)
	require.Empty(t, p.Pages)
}
