package pagination

import (
	"fmt"
	"math"
)

// Summarize returns the page count and a "from-to of total" label for a list response.
func Summarize(total int64, page, limit int) (totalPages int, showing string) {
	if limit <= 0 {
		limit = 1
	}
	totalPages = int(math.Ceil(float64(total) / float64(limit)))
	if total == 0 {
		return totalPages, "0 of 0"
	}
	showing = fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	return totalPages, showing
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
