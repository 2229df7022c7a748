package query

import "math"

// StartingIndex is the row offset of a 1-based page. Page 0 is treated as
// page 1.
func StartingIndex(pageNumber, pageSize int) int64 {
	page := pageNumber - 1
	if page < 0 {
		page = 0
	}
	return int64(pageSize) * int64(page)
}

// OffsetInRange reports whether the offset of a 1-based page fits in an
// int64 OFFSET.
func OffsetInRange(pageNumber, pageSize int) bool {
	if pageSize <= 0 || pageNumber <= 1 {
		return true
	}
	return int64(pageNumber-1) <= math.MaxInt64/int64(pageSize)
}

// TotalPages is ceil(count/pageSize). With pageSize 0 the result is
// unbounded, which is a single page when anything matched.
func TotalPages(count int64, pageSize int) int {
	if count <= 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}
