package pagination

const (
	// DefaultPageSize is the number of listings shown per page.
	DefaultPageSize = 6
	// MaxPageSize caps how many rows a single page may hold.
	MaxPageSize = 100
)

// Params holds numbered-page inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// NormalizePageSize enforces the default and maximum page sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages returns ceil(count / size), or 0 when count is 0.
func TotalPages(count, size int) int {
	if count <= 0 {
		return 0
	}
	size = NormalizePageSize(size)
	return (count + size - 1) / size
}

// InRange reports whether page is addressable for totalPages.
// Page 1 of an empty result is addressable so callers can render "no results".
func InRange(page, totalPages int) bool {
	if page < 1 {
		return false
	}
	if totalPages == 0 {
		return page == 1
	}
	return page <= totalPages
}

// Bounds returns the half-open [start, end) slice window for page.
// Pages outside the data yield an empty window at count.
func Bounds(page, size, count int) (int, int) {
	size = NormalizePageSize(size)
	if page < 1 || count <= 0 {
		return 0, 0
	}
	start := (page - 1) * size
	if start >= count {
		return count, count
	}
	end := start + size
	if end > count {
		end = count
	}
	return start, end
}
