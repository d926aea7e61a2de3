package crud

// DefaultPageSize is the page size of a new engine.
const DefaultPageSize = 12

// Window is the slice of the filtered sequence shown on the current page.
type Window struct {
	Start      int
	End        int
	TotalPages int
}

// Pagination is the pagination state exposed to a page.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	PageSize    int
	TotalItems  int
}

// TotalPages returns ceil(n / pageSize). A non-positive page size counts as 1.
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	return max(1, min(page, max(1, totalPages)))
}

// Paginate computes the window for currentPage over filteredLen items. The
// page is clamped first, so the window never points past the end.
func Paginate(filteredLen, currentPage, pageSize int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(filteredLen, pageSize)
	page := ClampPage(currentPage, total)
	start := min((page-1)*pageSize, max(0, filteredLen))
	end := min(start+pageSize, max(0, filteredLen))
	return Window{Start: start, End: end, TotalPages: total}
}
