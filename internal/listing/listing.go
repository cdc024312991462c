// Package listing pages and orders published entries.
package listing

import (
	"slices"
	"time"
)

// DefaultLimit is the page size used when none is given.
const DefaultLimit = 10

// Page is one slice of a paginated list.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Paginate returns the given 1-based page of items. A page below 1 is
// treated as 1 and a limit below 1 as DefaultLimit.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(items)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return Page[T]{
		Items:      items[start:end:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
		HasMore:    (page-1)*limit+limit < total,
	}
}

// Entry is the part of a published item needed to order it.
type Entry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	PubDate time.Time `json:"pubDate"`
}

// Neighbors are the entries around one item in newest-first order.
type Neighbors struct {
	Previous *Entry `json:"previous,omitempty"`
	Next     *Entry `json:"next,omitempty"`
}

// SortNewest sorts entries by publication date, newest first. Entries with
// the same date keep their order.
func SortNewest(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.PubDate.Compare(a.PubDate)
	})
}

// Adjacent finds the newer (Previous) and older (Next) neighbours of id.
// entries is not modified. An unknown id has no neighbours.
func Adjacent(entries []Entry, id string) Neighbors {
	sorted := slices.Clone(entries)
	SortNewest(sorted)

	i := slices.IndexFunc(sorted, func(e Entry) bool { return e.ID == id })
	if i == -1 {
		return Neighbors{}
	}

	var n Neighbors
	if i > 0 {
		prev := sorted[i-1]
		n.Previous = &prev
	}
	if i < len(sorted)-1 {
		next := sorted[i+1]
		n.Next = &next
	}
	return n
}
