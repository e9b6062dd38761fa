package service

import (
	"testing"

	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/infrastructure/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	content, err := seed.Catalog()
	require.NoError(t, err)
	return NewCatalog(content, newTestEnvLogger())
}

func TestCatalog_OpenTenders(t *testing.T) {
	c := newTestCatalog(t)

	page := c.Tenders.List(catalog.Query{OpenOnly: true, Sort: catalog.SortAmountDesc})
	require.Len(t, page.Items, 2)
	assert.Equal(t, "tnd-event-management", page.Items[0].ID)
	assert.Equal(t, "tnd-printing", page.Items[1].ID)
}

func TestCatalog_GoldenVendorSuppliers(t *testing.T) {
	c := newTestCatalog(t)

	page := c.Suppliers.List(catalog.Query{GoldenVendor: true, Sort: catalog.SortRating})
	require.Len(t, page.Items, 2)
	assert.Equal(t, "sup-secureit", page.Items[0].ID)
	assert.Equal(t, "sup-gulf-freight", page.Items[1].ID)
}

func TestCatalog_NoResultsThenCleared(t *testing.T) {
	c := newTestCatalog(t)

	empty := c.Deals.List(catalog.Query{Search: "zzz-no-such-deal"})
	assert.True(t, empty.Empty())
	assert.Equal(t, []catalog.Deal{}, empty.Items)

	all := c.Deals.List(catalog.Query{})
	assert.Equal(t, c.Deals.Len(), all.Total)
	assert.Equal(t, "deal-cloud-suite", all.Items[0].ID)
}

func TestCatalog_Get(t *testing.T) {
	c := newTestCatalog(t)

	report, err := c.Reports.Get("rpt-esg-readiness")
	require.NoError(t, err)
	assert.Equal(t, "sustainability", report.Category)

	_, err = c.Companies.Get("co-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Facets(t *testing.T) {
	c := newTestCatalog(t)

	facets := c.Suppliers.Facets()
	assert.Equal(t, []string{"logistics", "printing", "technology"}, facets.Categories)
	assert.Equal(t, catalog.KindSuppliers, c.Suppliers.Kind())
}
