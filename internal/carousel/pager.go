// Package carousel implements the paging state machine behind the
// testimonial slider: a page index over a fixed item list, advanced
// circularly, with the direction of the last move recorded for the
// enter/exit animation.
//
// Pager values are plain data. Every operation returns the next Pager and
// leaves the receiver untouched, so transitions can be tested without any
// rendering or timers.
package carousel

// Direction is the signed direction of the last index change.
type Direction int

const (
	// None is the direction before any navigation happened.
	None Direction = 0
	// Forward moves toward higher page indices.
	Forward Direction = 1
	// Backward moves toward lower page indices.
	Backward Direction = -1
)

// slideOffset is the horizontal distance, in pixels, that entering and
// exiting content travels.
const slideOffset = 1000

// String returns a name suitable for a data attribute.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Offsets returns the x offset new content enters from and the x offset old
// content exits toward. Forward content enters from the right and leaves to
// the left; Backward mirrors it. None behaves like Backward, matching a
// slider that has not moved yet.
func (d Direction) Offsets() (enter, exit int) {
	if d > 0 {
		return slideOffset, -slideOffset
	}
	return -slideOffset, slideOffset
}

// Pager is the paging state for a list of Count items shown PageSize at a
// time.
type Pager struct {
	Index     int
	PageSize  int
	Count     int
	Direction Direction
}

// New returns a pager at page 0.
func New(count, pageSize int) Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	if count < 0 {
		count = 0
	}
	return Pager{PageSize: pageSize, Count: count}
}

// PageCount returns ceil(Count/PageSize).
func (p Pager) PageCount() int {
	if p.Count <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Count + p.PageSize - 1) / p.PageSize
}

// Next advances one page, wrapping from the last page to the first.
func (p Pager) Next() Pager {
	n := p.PageCount()
	if n == 0 {
		return p
	}
	p.Direction = Forward
	p.Index = (p.Index + 1) % n
	return p
}

// Prev moves back one page, wrapping from the first page to the last.
func (p Pager) Prev() Pager {
	n := p.PageCount()
	if n == 0 {
		return p
	}
	p.Direction = Backward
	p.Index = (p.Index - 1 + n) % n
	return p
}

// GoTo jumps to page k. Direction is Forward when k >= Index and Backward
// otherwise. k must be within [0, PageCount()); callers validate it with
// Valid first.
func (p Pager) GoTo(k int) Pager {
	if k >= p.Index {
		p.Direction = Forward
	} else {
		p.Direction = Backward
	}
	p.Index = k
	return p
}

// Valid reports whether k is a page index GoTo accepts.
func (p Pager) Valid(k int) bool {
	return k >= 0 && k < p.PageCount()
}

// Bounds returns the half-open item range [start, end) of the current page,
// clipped to Count.
func (p Pager) Bounds() (start, end int) {
	start = p.Index * p.PageSize
	if start > p.Count {
		start = p.Count
	}
	end = start + p.PageSize
	if end > p.Count {
		end = p.Count
	}
	return start, end
}

// Resize switches to a new page size, keeping the first item of the current
// page visible. Direction is preserved.
func (p Pager) Resize(pageSize int) Pager {
	if pageSize < 1 || pageSize == p.PageSize {
		return p
	}
	first := p.Index * p.PageSize
	p.PageSize = pageSize
	p.Index = first / pageSize
	if n := p.PageCount(); p.Index >= n {
		p.Index = max(n-1, 0)
	}
	return p
}

// WithCount updates the item count, clamping the index when the list
// shrank.
func (p Pager) WithCount(count int) Pager {
	if count < 0 {
		count = 0
	}
	p.Count = count
	if n := p.PageCount(); p.Index >= n {
		p.Index = max(n-1, 0)
	}
	return p
}

// Visible returns the items on the pager's current page.
func Visible[T any](items []T, p Pager) []T {
	p = p.WithCount(len(items))
	start, end := p.Bounds()
	return items[start:end]
}

// PageSizeFor picks the page size for a viewport width: narrow viewports
// (width <= narrowMax) show narrowSize items, everything else wideSize.
// A width of 0 means unknown and selects the wide layout.
func PageSizeFor(width, narrowMax, narrowSize, wideSize int) int {
	if width > 0 && width <= narrowMax {
		return narrowSize
	}
	return wideSize
}
