package model

// Page carries pagination metadata for list responses.
type Page struct {
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	HasPrevPage bool  `json:"has_prev_page"`
	HasNextPage bool  `json:"has_next_page"`
	PrevPage    *int  `json:"prev_page"`
	NextPage    *int  `json:"next_page"`
}

func NewPage(page, limit int, total int64) Page {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	p := Page{
		Total: total,
		Pages: pages,
		Page:  page,
		Limit: limit,
	}
	if page > 1 {
		prev := page - 1
		p.HasPrevPage = true
		p.PrevPage = &prev
	}
	if page < pages {
		next := page + 1
		p.HasNextPage = true
		p.NextPage = &next
	}
	return p
}
