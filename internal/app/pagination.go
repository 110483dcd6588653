package app

import "math"

const (
	DefaultPageSize = 5
	MaxPageSize     = 100

	// maxPage keeps (page-1)*limit inside int for any allowed limit.
	maxPage = math.MaxInt / MaxPageSize
)

// normalizePage applies defaults and bounds and returns page, limit and offset.
func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}
