package utils

import (
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination reads the page/pageSize query parameters, applying
// defaults and bounds. Page numbering starts at 1.
func ParsePagination(query url.Values) (page int, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if v := query.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	if v := query.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			pageSize = n
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}
	return page, pageSize
}

// IsLastPage reports whether a returned page is the last one: a page is
// last when it came back shorter than the requested page size.
func IsLastPage(returned, pageSize int) bool {
	return returned < pageSize
}
