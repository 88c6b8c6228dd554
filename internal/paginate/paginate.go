// Package paginate slices an ordered result set into fixed-size pages.
package paginate

// Page is one slice of a larger ordered sequence.
type Page[T any] struct {
	Items       []T
	Number      int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// Paginate returns the 1-based page of items. Out-of-range page numbers
// clamp to the nearest valid page: below range serves the first page, above
// range the last. An empty input is a single empty page. Identical inputs
// always slice identically.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}
	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:       items[start:end],
		Number:      pageNumber,
		TotalPages:  totalPages,
		HasNext:     pageNumber < totalPages,
		HasPrevious: pageNumber > 1,
	}
}
