package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size, or nil when unbounded so SQL LIMIT NULL returns every row.
func (p PaginationParams) Limit() any {
	if p.PageSize < 1 {
		return nil
	}
	return p.PageSize
}
