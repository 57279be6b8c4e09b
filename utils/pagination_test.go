package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	page, pageSize := ParsePagination(url.Values{})
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}

func TestParsePaginationExplicitValues(t *testing.T) {
	q := url.Values{"page": {"3"}, "pageSize": {"50"}}
	page, pageSize := ParsePagination(q)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)
}

func TestParsePaginationClampsPageSize(t *testing.T) {
	q := url.Values{"pageSize": {"500"}}
	_, pageSize := ParsePagination(q)
	assert.Equal(t, 100, pageSize)
}

func TestParsePaginationIgnoresInvalidValues(t *testing.T) {
	q := url.Values{"page": {"0"}, "pageSize": {"-5"}}
	page, pageSize := ParsePagination(q)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	q = url.Values{"page": {"abc"}, "pageSize": {"xyz"}}
	page, pageSize = ParsePagination(q)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}

func TestIsLastPage(t *testing.T) {
	assert.True(t, IsLastPage(5, 20))
	assert.True(t, IsLastPage(0, 20))
	assert.False(t, IsLastPage(20, 20))
}
