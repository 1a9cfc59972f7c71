package query

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// OrderClause resolves SortBy through allowed (request field -> column) and
// falls back to fallback when the field is not whitelisted.
func (f SortFilter) OrderClause(allowed map[string]string, fallback string) string {
	column, ok := allowed[f.SortBy]
	if !ok {
		return fallback
	}
	if f.IsDescending() {
		return column + " DESC"
	}
	return column + " ASC"
}

type BaseFilter struct {
	PageFilter
	SortFilter
}

type FilterOption func(*BaseFilter)

func WithPage(page, pageSize int) FilterOption {
	return func(f *BaseFilter) {
		f.Page = page
		f.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(f *BaseFilter) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	}
}

func NewBaseFilter(opts ...FilterOption) BaseFilter {
	f := BaseFilter{
		PageFilter: PageFilter{Page: 1, PageSize: DefaultPageSize},
		SortFilter: SortFilter{SortOrder: "desc"},
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}
