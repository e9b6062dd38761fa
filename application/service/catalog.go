package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/chamberhub/bizportal/domain/catalog"
)

// FacetValues lists the filter values a hub offers.
type FacetValues struct {
	Categories []string
	Sectors    []string
}

// Hub serves one member content hub from memory.
type Hub[T catalog.Entry] struct {
	kind  catalog.Kind
	items []T
}

// NewHub creates a hub over items, kept in curated order.
func NewHub[T catalog.Entry](kind catalog.Kind, items []T) Hub[T] {
	return Hub[T]{kind: kind, items: append([]T(nil), items...)}
}

// Kind returns the hub name.
func (h Hub[T]) Kind() catalog.Kind { return h.kind }

// List filters, sorts and paginates the hub.
func (h Hub[T]) List(q catalog.Query) catalog.Page[T] {
	return catalog.Apply(h.items, q)
}

// Get returns one item by id.
func (h Hub[T]) Get(id string) (T, error) {
	item, ok := catalog.Find(h.items, strings.TrimSpace(id))
	if !ok {
		return item, fmt.Errorf("%s %q: %w", h.kind, id, ErrNotFound)
	}
	return item, nil
}

// Facets returns the categories and sectors present in the hub.
func (h Hub[T]) Facets() FacetValues {
	return FacetValues{
		Categories: catalog.Categories(h.items),
		Sectors:    catalog.Sectors(h.items),
	}
}

// Len returns the number of items.
func (h Hub[T]) Len() int { return len(h.items) }

// Catalog serves the member-only hubs.
type Catalog struct {
	Deals     Hub[catalog.Deal]
	Datasets  Hub[catalog.Dataset]
	Reports   Hub[catalog.Report]
	Companies Hub[catalog.Company]
	Suppliers Hub[catalog.Supplier]
	Tenders   Hub[catalog.Tender]
}

// NewCatalog creates the hubs over content.
func NewCatalog(content catalog.Catalog, logger *slog.Logger) *Catalog {
	c := &Catalog{
		Deals:     NewHub(catalog.KindDeals, content.Deals),
		Datasets:  NewHub(catalog.KindDatasets, content.Datasets),
		Reports:   NewHub(catalog.KindReports, content.Reports),
		Companies: NewHub(catalog.KindCompanies, content.Companies),
		Suppliers: NewHub(catalog.KindSuppliers, content.Suppliers),
		Tenders:   NewHub(catalog.KindTenders, content.Tenders),
	}
	attrs := make([]any, 0, 6)
	for kind, n := range content.Counts() {
		attrs = append(attrs, slog.Int(string(kind), n))
	}
	logger.Debug("member hubs loaded", attrs...)
	return c
}
