package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suppliers() []Supplier {
	return []Supplier{
		{ID: "s1", Name: locale.NewText("Gulf Logistics", "الخليج للخدمات اللوجستية"), Category: "logistics", Sector: "transport", Rating: 4.2, GoldenVendor: true},
		{ID: "s2", Name: locale.NewText("Atlas Catering", "أطلس للتموين"), Category: "food", Sector: "hospitality", Rating: 4.8},
		{ID: "s3", Name: locale.NewText("Blue Print Co", "بلو برنت"), Category: "printing", Sector: "media", Rating: 4.2, Certifications: []string{"ISO 9001"}},
		{ID: "s4", Name: locale.NewText("Crescent Freight", "الهلال للشحن"), Category: "logistics", Sector: "transport", Rating: 3.9, GoldenVendor: true},
	}
}

func ids[T Entry](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.EntryID()
	}
	return out
}

func TestApply_NoFiltersKeepsOriginalOrder(t *testing.T) {
	items := suppliers()

	page := Apply(items, Query{})

	assert.Empty(t, cmp.Diff([]string{"s1", "s2", "s3", "s4"}, ids(page.Items)))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestApply_FilterThenClearRestoresOrder(t *testing.T) {
	items := suppliers()

	filtered := Apply(items, Query{Category: "logistics", GoldenVendor: true})
	assert.Equal(t, []string{"s1", "s4"}, ids(filtered.Items))

	cleared := Apply(items, Query{})
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, ids(cleared.Items))
	assert.Equal(t, "s1", items[0].ID, "input must not be reordered")
}

func TestApply_ZeroMatchesIsEmptyPage(t *testing.T) {
	page := Apply(suppliers(), Query{Search: "nonexistent vendor"})

	assert.True(t, page.Empty())
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestApply_SearchMatchesBilingualFields(t *testing.T) {
	page := Apply(suppliers(), Query{Search: "شحن"})
	assert.Equal(t, []string{"s4"}, ids(page.Items))

	page = Apply(suppliers(), Query{Search: "iso 9001"})
	assert.Equal(t, []string{"s3"}, ids(page.Items))
}

func TestApply_SortIsStable(t *testing.T) {
	page := Apply(suppliers(), Query{Sort: SortRating})

	// s1 and s3 share a rating and keep their relative order.
	assert.Equal(t, []string{"s2", "s1", "s3", "s4"}, ids(page.Items))
}

func TestApply_SortTitle(t *testing.T) {
	page := Apply(suppliers(), Query{Sort: SortTitle})
	assert.Equal(t, []string{"s2", "s3", "s4", "s1"}, ids(page.Items))
}

func TestApply_Pagination(t *testing.T) {
	items := suppliers()

	first := Apply(items, Query{PageSize: 3})
	second := Apply(items, Query{PageSize: 3, Page: 2})
	beyond := Apply(items, Query{PageSize: 3, Page: 5})

	assert.Equal(t, []string{"s1", "s2", "s3"}, ids(first.Items))
	assert.Equal(t, []string{"s4"}, ids(second.Items))
	assert.Equal(t, 2, second.TotalPages)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 4, beyond.Total)
}

func TestApply_HugePageIsEmpty(t *testing.T) {
	items := suppliers()

	var page Page[Supplier]
	assert.NotPanics(t, func() {
		page = Apply(items, Query{PageSize: MaxPageSize, Page: 92233720368547761})
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	page = Apply(items, Query{PageSize: 1, Page: math.MaxInt})
	assert.Empty(t, page.Items)
}

func TestQuery_Normalized(t *testing.T) {
	q := Query{Page: -2, PageSize: 1000, Category: "  food "}.Normalized()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, "food", q.Category)
	assert.True(t, q.Filtered())
	assert.False(t, Query{}.Filtered())
}

func TestApply_TendersOpenOnlyAndBudget(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tenders := []Tender{
		{ID: "t1", Budget: decimal.RequireFromString("150000.00"), Deadline: now.AddDate(0, 1, 0), Status: TenderOpen},
		{ID: "t2", Budget: decimal.RequireFromString("980000.50"), Deadline: now.AddDate(0, -1, 0), Status: TenderAwarded},
		{ID: "t3", Budget: decimal.RequireFromString("420000"), Deadline: now.AddDate(0, 2, 0), Status: TenderOpen},
	}

	open := Apply(tenders, Query{OpenOnly: true, Sort: SortAmountDesc})
	assert.Equal(t, []string{"t3", "t1"}, ids(open.Items))

	byDeadline := Apply(tenders, Query{Sort: SortOldest})
	assert.Equal(t, []string{"t2", "t1", "t3"}, ids(byDeadline.Items))
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort(" Rating ")
	require.NoError(t, err)
	assert.Equal(t, SortRating, s)

	s, err = ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortDefault, s)

	_, err = ParseSort("price")
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestFindAndFacets(t *testing.T) {
	items := suppliers()

	s, ok := Find(items, "s3")
	require.True(t, ok)
	assert.Equal(t, "Blue Print Co", s.Name.En)

	_, ok = Find(items, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"food", "logistics", "printing"}, Categories(items))
	assert.Equal(t, []string{"hospitality", "media", "transport"}, Sectors(items))
}

func TestDataset_Change(t *testing.T) {
	d := Dataset{Series: []Point{
		{Label: "2024", Value: decimal.NewFromInt(200)},
		{Label: "2025", Value: decimal.NewFromInt(250)},
	}}

	change, ok := d.Change()
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(25).Equal(change))

	latest, ok := d.Latest()
	require.True(t, ok)
	assert.Equal(t, "2025", latest.Label)

	_, ok = Dataset{}.Change()
	assert.False(t, ok)
}
