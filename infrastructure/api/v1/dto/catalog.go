package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealSchema is a member discount.
type DealSchema struct {
	ID           string          `json:"id"`
	Title        Localized       `json:"title"`
	Description  Localized       `json:"description"`
	Partner      Localized       `json:"partner"`
	Category     string          `json:"category"`
	Sector       string          `json:"sector"`
	DiscountPct  int             `json:"discountPct"`
	MemberPrice  decimal.Decimal `json:"memberPrice"`
	Currency     string          `json:"currency"`
	ValidUntil   time.Time       `json:"validUntil"`
	URL          string          `json:"url,omitempty"`
	Featured     bool            `json:"featured"`
	GoldenVendor bool            `json:"goldenVendor"`
}

// PointSchema is one observation of a dataset series.
type PointSchema struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// DatasetSchema is a dashboard series with its latest value and change.
type DatasetSchema struct {
	ID          string           `json:"id"`
	Title       Localized        `json:"title"`
	Description Localized        `json:"description"`
	Category    string           `json:"category"`
	Sector      string           `json:"sector"`
	Source      string           `json:"source"`
	Unit        string           `json:"unit"`
	Frequency   string           `json:"frequency"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Series      []PointSchema    `json:"series"`
	Latest      *PointSchema     `json:"latest"`
	ChangePct   *decimal.Decimal `json:"changePct"`
	Featured    bool             `json:"featured"`
}

// ReportSchema is a published research document.
type ReportSchema struct {
	ID          string    `json:"id"`
	Title       Localized `json:"title"`
	Summary     Localized `json:"summary"`
	Category    string    `json:"category"`
	Sector      string    `json:"sector"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	Pages       int       `json:"pages"`
	URL         string    `json:"url,omitempty"`
	Featured    bool      `json:"featured"`
}

// CompanySchema is a market directory listing.
type CompanySchema struct {
	ID           string    `json:"id"`
	Name         Localized `json:"name"`
	Description  Localized `json:"description"`
	Category     string    `json:"category"`
	Sector       string    `json:"sector"`
	City         Localized `json:"city"`
	Website      string    `json:"website,omitempty"`
	Employees    int       `json:"employees"`
	Founded      int       `json:"founded"`
	Verified     bool      `json:"verified"`
	GoldenVendor bool      `json:"goldenVendor"`
}

// SupplierSchema is a procurement marketplace vendor.
type SupplierSchema struct {
	ID             string    `json:"id"`
	Name           Localized `json:"name"`
	Description    Localized `json:"description"`
	Category       string    `json:"category"`
	Sector         string    `json:"sector"`
	City           Localized `json:"city"`
	Rating         float64   `json:"rating"`
	Certifications []string  `json:"certifications"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	GoldenVendor   bool      `json:"goldenVendor"`
}

// TenderSchema is a procurement opportunity.
type TenderSchema struct {
	ID          string          `json:"id"`
	Title       Localized       `json:"title"`
	Description Localized       `json:"description"`
	Issuer      Localized       `json:"issuer"`
	Category    string          `json:"category"`
	Sector      string          `json:"sector"`
	Budget      decimal.Decimal `json:"budget"`
	Currency    string          `json:"currency"`
	PublishedAt time.Time       `json:"publishedAt"`
	Deadline    time.Time       `json:"deadline"`
	Status      string          `json:"status"`
}

// CatalogFilters echoes the hub filters applied to a listing.
type CatalogFilters struct {
	Category     string `json:"category,omitempty"`
	Sector       string `json:"sector,omitempty"`
	Query        string `json:"q,omitempty"`
	Featured     bool   `json:"featured,omitempty"`
	GoldenVendor bool   `json:"goldenVendor,omitempty"`
	Open         bool   `json:"open,omitempty"`
	Sort         string `json:"sort,omitempty"`
}

// Facets lists the filter values available in a hub.
type Facets struct {
	Categories []string `json:"categories"`
	Sectors    []string `json:"sectors"`
}

// HubListResponse is the body of GET /api/member/{hub}.
type HubListResponse[T any] struct {
	LocaleInfo

	Success    bool           `json:"success"`
	Kind       string         `json:"kind"`
	Filters    CatalogFilters `json:"filters"`
	Facets     Facets         `json:"facets"`
	Pagination Pagination     `json:"pagination"`
	Items      []T            `json:"items"`
}

// HubItemResponse is the body of GET /api/member/{hub}/{id}.
type HubItemResponse[T any] struct {
	LocaleInfo

	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Item    T      `json:"item"`
}
