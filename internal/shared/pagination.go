package shared

// Window bounds an offset/limit listing.
type Window struct {
	Skip  int
	Limit int
}

// NewWindow clamps skip to zero and limit to (0, max]. A non-positive limit means max.
func NewWindow(skip, limit, max int) Window {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > max {
		limit = max
	}
	return Window{Skip: skip, Limit: limit}
}
