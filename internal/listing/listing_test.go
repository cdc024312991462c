package listing

import (
	"testing"
	"time"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name       string
		page       int
		limit      int
		items      []int
		pageNum    int
		limitNum   int
		totalPages int
		hasMore    bool
	}{
		{"first page", 1, 5, []int{1, 2, 3, 4, 5}, 1, 5, 3, true},
		{"last partial page", 3, 5, []int{11, 12}, 3, 5, 3, false},
		{"past the end", 4, 5, []int{}, 4, 5, 3, false},
		{"page below one", 0, 5, []int{1, 2, 3, 4, 5}, 1, 5, 3, true},
		{"default limit", 1, 0, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, 10, 2, true},
		{"exact fit", 2, 6, []int{7, 8, 9, 10, 11, 12}, 2, 6, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.limit)
			if len(got.Items) != len(tt.items) {
				t.Fatalf("Items = %v, want %v", got.Items, tt.items)
			}
			for i := range tt.items {
				if got.Items[i] != tt.items[i] {
					t.Errorf("Items = %v, want %v", got.Items, tt.items)
					break
				}
			}
			if got.Total != len(items) || got.Page != tt.pageNum || got.Limit != tt.limitNum {
				t.Errorf("Total/Page/Limit = %d/%d/%d", got.Total, got.Page, got.Limit)
			}
			if got.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", got.TotalPages, tt.totalPages)
			}
			if got.HasMore != tt.hasMore {
				t.Errorf("HasMore = %v, want %v", got.HasMore, tt.hasMore)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate([]string(nil), 1, 10)
	if len(got.Items) != 0 || got.TotalPages != 0 || got.HasMore {
		t.Errorf("Paginate(nil) = %+v", got)
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestAdjacent(t *testing.T) {
	entries := []Entry{
		{ID: "old", PubDate: day(1)},
		{ID: "new", PubDate: day(3)},
		{ID: "mid", PubDate: day(2)},
	}

	tests := []struct {
		id   string
		prev string
		next string
	}{
		{"new", "", "mid"},
		{"mid", "new", "old"},
		{"old", "mid", ""},
		{"missing", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := Adjacent(entries, tt.id)
			if id := idOf(n.Previous); id != tt.prev {
				t.Errorf("Previous = %q, want %q", id, tt.prev)
			}
			if id := idOf(n.Next); id != tt.next {
				t.Errorf("Next = %q, want %q", id, tt.next)
			}
		})
	}

	if entries[0].ID != "old" {
		t.Error("Adjacent reordered its input")
	}
}

func TestSortNewestStable(t *testing.T) {
	entries := []Entry{
		{ID: "a", PubDate: day(1)},
		{ID: "b", PubDate: day(1)},
		{ID: "c", PubDate: day(2)},
	}
	SortNewest(entries)

	want := []string{"c", "a", "b"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("order = %v, want %v", entries, want)
		}
	}
}

func idOf(e *Entry) string {
	if e == nil {
		return ""
	}
	return e.ID
}
