package usecases

const (
	// DefaultPage is the first page of a listing.
	DefaultPage = 1
	// DefaultPageSize is the page size used when the caller gives none.
	DefaultPageSize = 20
	// MaxPageSize caps the page size regardless of what the caller asks for.
	MaxPageSize = 100
)

// pageWindow normalizes page/limit into an offset window. Out-of-range
// values fall back to the defaults rather than erroring.
func pageWindow(page, limit int) (offset, size int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return (page - 1) * limit, limit
}
