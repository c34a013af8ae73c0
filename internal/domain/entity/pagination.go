package entity

// Pagination describes one page of a result set.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

// NewPagination clamps page and perPage to at least 1, and perPage to at
// most maxPerPage when maxPerPage is positive.
func NewPagination(page, perPage, maxPerPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

// WithTotal returns a copy carrying total and the derived page count.
func (p Pagination) WithTotal(total int64) Pagination {
	p.Total = total
	p.TotalPages = int(total / int64(p.PerPage))
	if total%int64(p.PerPage) > 0 {
		p.TotalPages++
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}
