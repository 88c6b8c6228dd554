package paginate

import (
	"reflect"
	"testing"
)

func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestPaginateBasics(t *testing.T) {
	pg := Paginate(sequence(13), 10, 1)
	if len(pg.Items) != 10 {
		t.Fatalf("page 1 has %d items, want 10", len(pg.Items))
	}
	if pg.TotalPages != 2 {
		t.Fatalf("total pages %d, want 2", pg.TotalPages)
	}
	if !pg.HasNext || pg.HasPrevious {
		t.Fatalf("page 1: HasNext=%v HasPrevious=%v", pg.HasNext, pg.HasPrevious)
	}

	pg = Paginate(sequence(13), 10, 2)
	if len(pg.Items) != 3 {
		t.Fatalf("page 2 has %d items, want 3", len(pg.Items))
	}
	if pg.HasNext || !pg.HasPrevious {
		t.Fatalf("page 2: HasNext=%v HasPrevious=%v", pg.HasNext, pg.HasPrevious)
	}
}

func TestPaginateClamps(t *testing.T) {
	items := sequence(13)

	low := Paginate(items, 10, 0)
	if low.Number != 1 {
		t.Fatalf("below range served page %d, want 1", low.Number)
	}
	if !reflect.DeepEqual(low.Items, Paginate(items, 10, 1).Items) {
		t.Fatal("below range should serve the first page's items")
	}

	high := Paginate(items, 10, 3)
	if high.Number != 2 {
		t.Fatalf("above range served page %d, want 2", high.Number)
	}
	if !reflect.DeepEqual(high.Items, Paginate(items, 10, 2).Items) {
		t.Fatal("above range should serve the last page's items")
	}
}

func TestPaginateEmpty(t *testing.T) {
	pg := Paginate([]int{}, 10, 1)
	if len(pg.Items) != 0 {
		t.Fatalf("empty input yielded %d items", len(pg.Items))
	}
	if pg.TotalPages != 1 || pg.Number != 1 {
		t.Fatalf("empty input: number=%d total=%d, want 1/1", pg.Number, pg.TotalPages)
	}
	if pg.HasNext || pg.HasPrevious {
		t.Fatal("empty input should have no neighbors")
	}
}

// Concatenating every page in order must reproduce the input exactly once
// per item, with no page exceeding the page size.
func TestPaginatePartition(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100} {
		items := sequence(n)
		var got []int
		page := 1
		for {
			pg := Paginate(items, 10, page)
			if len(pg.Items) > 10 {
				t.Fatalf("n=%d page=%d has %d items", n, page, len(pg.Items))
			}
			got = append(got, pg.Items...)
			if !pg.HasNext {
				break
			}
			page++
		}
		if n == 0 {
			if len(got) != 0 {
				t.Fatalf("n=0 produced %d items", len(got))
			}
			continue
		}
		if !reflect.DeepEqual(got, items) {
			t.Fatalf("n=%d: concatenated pages differ from input", n)
		}
	}
}

func TestPaginateDeterministic(t *testing.T) {
	items := sequence(42)
	a := Paginate(items, 10, 3)
	b := Paginate(items, 10, 3)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs sliced differently")
	}
}
