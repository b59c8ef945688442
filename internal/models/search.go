package models

// SortOrder is the direction of a single-field sort
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchParams describes a multi-criteria user search. Filter categories
// compose conjunctively; the text query matches disjunctively against name,
// skill names and interest names (case-insensitive substring).
type SearchParams struct {
	Query       string
	SkillIDs    []int64
	InterestIDs []int64
	Role        *UserRole
	SortBy      string
	SortOrder   SortOrder
	Page        int
	PageSize    int
}

// Normalize applies defaults for unset pagination and sort values
func (p *SearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.SortBy == "" {
		p.SortBy = "name"
	}
	if p.SortOrder != SortDesc {
		p.SortOrder = SortAsc
	}
}

// Offset returns the number of rows to skip for the current page
func (p *SearchParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Pagination describes the full result set a page was cut from
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// SearchUsersResult is a page of matched users plus pagination info
type SearchUsersResult struct {
	Users      []*UserWithTaxonomy `json:"users"`
	Pagination Pagination          `json:"pagination"`
}
