package projectlist

// maxPageLinks is the widest window of page numbers a pager shows
const maxPageLinks = 10

// Pager describes the current page of a list and the window of page links around it
type Pager struct {
	TotalItems  int
	CurrentPage int
	PageSize    int
	TotalPages  int
	StartPage   int
	EndPage     int

	// StartIndex and EndIndex are the inclusive item bounds of the current page; both are -1 for an empty list
	StartIndex int
	EndIndex   int

	Pages []int
}

// Paginate computes the pager for totalItems items. currentPage is 1-based and clamped into range.
func Paginate(totalItems, currentPage, pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := (totalItems + pageSize - 1) / pageSize

	if currentPage < 1 {
		currentPage = 1
	}
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	var startPage, endPage int
	switch {
	case totalPages <= maxPageLinks:
		startPage, endPage = 1, totalPages
	case currentPage <= 6:
		startPage, endPage = 1, maxPageLinks
	case currentPage+4 >= totalPages:
		startPage, endPage = totalPages-9, totalPages
	default:
		startPage, endPage = currentPage-5, currentPage+4
	}

	p := Pager{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		StartPage:   startPage,
		EndPage:     endPage,
		StartIndex:  -1,
		EndIndex:    -1,
	}
	if totalItems > 0 {
		p.StartIndex = (currentPage - 1) * pageSize
		p.EndIndex = p.StartIndex + pageSize - 1
		if p.EndIndex > totalItems-1 {
			p.EndIndex = totalItems - 1
		}
	}
	for page := startPage; page <= endPage && page > 0; page++ {
		p.Pages = append(p.Pages, page)
	}
	return p
}
