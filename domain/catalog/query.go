package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/shopspring/decimal"
)

// Page size bounds.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// ErrUnknownSort is returned for an unsupported sort key.
var ErrUnknownSort = errors.New("unknown sort key")

// Facets are the filterable attributes of an entry.
type Facets struct {
	Category     string
	Sector       string
	Featured     bool
	GoldenVendor bool
	Open         bool
}

// SortKeys are the values an entry is ordered by.
type SortKeys struct {
	Title  string
	Date   time.Time
	Amount decimal.Decimal
	Rating float64
}

// Entry is implemented by every catalog record.
type Entry interface {
	EntryID() string
	Facets() Facets
	SearchFields() []string
	SortKeys() SortKeys
}

// Sort selects the ordering of a listing.
type Sort string

// Sort values. SortDefault keeps the curated order.
const (
	SortDefault    Sort = ""
	SortTitle      Sort = "title"
	SortNewest     Sort = "newest"
	SortOldest     Sort = "oldest"
	SortAmountDesc Sort = "amount_desc"
	SortAmountAsc  Sort = "amount_asc"
	SortRating     Sort = "rating"
)

// ParseSort parses a sort key. Empty means SortDefault.
func ParseSort(s string) (Sort, error) {
	switch v := Sort(strings.ToLower(strings.TrimSpace(s))); v {
	case SortDefault, SortTitle, SortNewest, SortOldest, SortAmountDesc, SortAmountAsc, SortRating:
		return v, nil
	default:
		return SortDefault, fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
}

// Query filters, orders and pages a listing.
type Query struct {
	Category     string
	Sector       string
	Search       string
	Featured     bool
	GoldenVendor bool
	OpenOnly     bool
	Sort         Sort
	Page         int
	PageSize     int
}

// Normalized returns q with page and page size clamped to valid values.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	q.Category = strings.TrimSpace(q.Category)
	q.Sector = strings.TrimSpace(q.Sector)
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Filtered reports whether any filter is active.
func (q Query) Filtered() bool {
	return q.Category != "" || q.Sector != "" || q.Search != "" ||
		q.Featured || q.GoldenVendor || q.OpenOnly
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Empty reports whether the query matched nothing.
func (p Page[T]) Empty() bool { return p.Total == 0 }

// Apply filters, sorts and paginates items. The input slice is not modified.
func Apply[T Entry](items []T, q Query) Page[T] {
	q = q.Normalized()

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if q.matches(item) {
			matched = append(matched, item)
		}
	}

	if q.Sort != SortDefault {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(q.Sort, matched[i].SortKeys(), matched[j].SortKeys())
		})
	}

	total := len(matched)
	page := Page[T]{
		Items:      []T{},
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}
	// Compare page numbers before multiplying; a huge page would overflow.
	if q.Page > page.TotalPages {
		return page
	}
	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	page.Items = matched[start:end]
	return page
}

func (q Query) matches(e Entry) bool {
	f := e.Facets()
	if q.Category != "" && !strings.EqualFold(f.Category, q.Category) {
		return false
	}
	if q.Sector != "" && !strings.EqualFold(f.Sector, q.Sector) {
		return false
	}
	if q.Featured && !f.Featured {
		return false
	}
	if q.GoldenVendor && !f.GoldenVendor {
		return false
	}
	if q.OpenOnly && !f.Open {
		return false
	}
	return locale.Matches(q.Search, e.SearchFields()...)
}

func less(s Sort, a, b SortKeys) bool {
	switch s {
	case SortTitle:
		return locale.Fold(a.Title) < locale.Fold(b.Title)
	case SortNewest:
		return a.Date.After(b.Date)
	case SortOldest:
		return a.Date.Before(b.Date)
	case SortAmountDesc:
		return a.Amount.GreaterThan(b.Amount)
	case SortAmountAsc:
		return a.Amount.LessThan(b.Amount)
	case SortRating:
		return a.Rating > b.Rating
	default:
		return false
	}
}

// Find returns the entry with the given id.
func Find[T Entry](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.EntryID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Categories returns the distinct categories in items, sorted.
func Categories[T Entry](items []T) []string {
	return distinct(items, func(f Facets) string { return f.Category })
}

// Sectors returns the distinct sectors in items, sorted.
func Sectors[T Entry](items []T) []string {
	return distinct(items, func(f Facets) string { return f.Sector })
}

func distinct[T Entry](items []T, pick func(Facets) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range items {
		v := pick(item.Facets())
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
