package dashboard

import (
	"github.com/user-dashboard/internal/models"
)

// PageSize is the number of table rows shown per page
const PageSize = 10

// Pagination describes the page of rows being shown. Pages are 1-based.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	TotalRows  int  `json:"totalRows"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
	PrevPage   int  `json:"prevPage,omitempty"`
	NextPage   int  `json:"nextPage,omitempty"`
}

// Paginate returns the rows of the requested page. page is clamped to
// [1, TotalPages]; there is always at least one (possibly empty) page.
func Paginate(records []models.UserAggregateRecord, page, size int) ([]models.UserAggregateRecord, Pagination) {
	if size <= 0 {
		size = PageSize
	}

	total := len(records)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	p := Pagination{
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalRows:  total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}

	return records[start:end:end], p
}
