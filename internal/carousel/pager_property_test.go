//go:build property
// +build property

package carousel

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPagerProperties checks the cyclic invariants of the paging state
// machine over arbitrary list and page sizes.
func TestPagerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("page count is ceil(count/size)", prop.ForAll(
		func(count, size int) bool {
			n := New(count, size).PageCount()
			return n*size >= count && (n-1)*size < count
		},
		gen.IntRange(1, 200),
		gen.IntRange(1, 12),
	))

	properties.Property("next applied pageCount times returns to the start", prop.ForAll(
		func(count, size, start int) bool {
			p := New(count, size)
			p = p.GoTo(start % p.PageCount())
			origin := p.Index
			for i := 0; i < p.PageCount(); i++ {
				p = p.Next()
			}
			return p.Index == origin
		},
		gen.IntRange(1, 200),
		gen.IntRange(1, 12),
		gen.IntRange(0, 1000),
	))

	properties.Property("prev undoes next and next undoes prev", prop.ForAll(
		func(count, size, start int) bool {
			p := New(count, size)
			p = p.GoTo(start % p.PageCount())
			return p.Next().Prev().Index == p.Index && p.Prev().Next().Index == p.Index
		},
		gen.IntRange(1, 200),
		gen.IntRange(1, 12),
		gen.IntRange(0, 1000),
	))

	properties.Property("index always stays within bounds", prop.ForAll(
		func(count, size int, moves []bool) bool {
			p := New(count, size)
			for _, forward := range moves {
				if forward {
					p = p.Next()
				} else {
					p = p.Prev()
				}
				if p.Index < 0 || p.Index >= p.PageCount() {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 100),
		gen.IntRange(1, 12),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("visible page never exceeds page size and covers the list", prop.ForAll(
		func(count, size int) bool {
			items := make([]int, count)
			for i := range items {
				items[i] = i
			}
			p := New(count, size)
			seen := 0
			for i := 0; i < p.PageCount(); i++ {
				page := Visible(items, p.GoTo(i))
				if len(page) == 0 || len(page) > size {
					return false
				}
				seen += len(page)
			}
			return seen == count
		},
		gen.IntRange(1, 200),
		gen.IntRange(1, 12),
	))

	properties.Property("goto records the semantic direction", prop.ForAll(
		func(count, from, to int) bool {
			p := New(count, 1).GoTo(from % count)
			q := p.GoTo(to % count)
			if to%count >= p.Index {
				return q.Direction == Forward
			}
			return q.Direction == Backward
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
