package util

// Page is the result of slicing an ordered list for one page view.
type Page struct {
	Start      int
	End        int
	Page       int
	TotalPages int
}

// Paginate computes the [Start, End) slice bounds for requestedPage of a list
// with totalItems entries, pageSize per page. An empty list still yields one
// page of zero items, which is what folder and question list views render.
// The requested page is clamped into [0, TotalPages-1].
func Paginate(totalItems, pageSize, requestedPage int) Page {
	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems-1)/pageSize + 1
	}

	page := requestedPage
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}
	return Page{Start: start, End: end, Page: page, TotalPages: totalPages}
}

// PaginateSparse is the leaderboard variant: an empty list reports zero pages
// so the caller can render its dedicated empty-state placeholder.
func PaginateSparse(totalItems, pageSize, requestedPage int) Page {
	if totalItems == 0 {
		return Page{}
	}
	return Paginate(totalItems, pageSize, requestedPage)
}
