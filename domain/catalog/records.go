// Package catalog holds the member-only content hubs: deals, datasets,
// reports, the market directory and the procurement marketplace. Content is
// static and served from memory.
package catalog

import (
	"time"

	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/shopspring/decimal"
)

// Kind names a content hub.
type Kind string

// Kind values.
const (
	KindDeals     Kind = "deals"
	KindDatasets  Kind = "datasets"
	KindReports   Kind = "reports"
	KindCompanies Kind = "companies"
	KindSuppliers Kind = "suppliers"
	KindTenders   Kind = "tenders"
)

// Deal is a member discount offered by a partner.
type Deal struct {
	ID           string
	Title        locale.Text
	Description  locale.Text
	Partner      locale.Text
	Category     string
	Sector       string
	DiscountPct  int
	MemberPrice  decimal.Decimal
	Currency     string
	ValidUntil   time.Time
	URL          string
	Featured     bool
	GoldenVendor bool
}

// Point is one observation of a dataset series.
type Point struct {
	Label string
	Value decimal.Decimal
}

// Dataset is a dashboard-ready statistical series.
type Dataset struct {
	ID          string
	Title       locale.Text
	Description locale.Text
	Category    string
	Sector      string
	Source      string
	Unit        string
	Frequency   string
	UpdatedAt   time.Time
	Series      []Point
	Featured    bool
}

// Latest returns the most recent point, if any.
func (d Dataset) Latest() (Point, bool) {
	if len(d.Series) == 0 {
		return Point{}, false
	}
	return d.Series[len(d.Series)-1], true
}

// Change returns the relative change between the last two points as a percentage.
func (d Dataset) Change() (decimal.Decimal, bool) {
	if len(d.Series) < 2 {
		return decimal.Zero, false
	}
	prev := d.Series[len(d.Series)-2].Value
	last := d.Series[len(d.Series)-1].Value
	if prev.IsZero() {
		return decimal.Zero, false
	}
	return last.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2), true
}

// Report is a published research document.
type Report struct {
	ID          string
	Title       locale.Text
	Summary     locale.Text
	Category    string
	Sector      string
	Author      string
	PublishedAt time.Time
	Pages       int
	URL         string
	Featured    bool
}

// Company is a market directory listing.
type Company struct {
	ID           string
	Name         locale.Text
	Description  locale.Text
	Category     string
	Sector       string
	City         locale.Text
	Website      string
	Employees    int
	Founded      int
	Verified     bool
	GoldenVendor bool
}

// Supplier is a procurement marketplace vendor.
type Supplier struct {
	ID             string
	Name           locale.Text
	Description    locale.Text
	Category       string
	Sector         string
	City           locale.Text
	Rating         float64
	Certifications []string
	ContactEmail   string
	GoldenVendor   bool
}

// TenderStatus is the state of a procurement tender.
type TenderStatus string

// TenderStatus values.
const (
	TenderOpen    TenderStatus = "OPEN"
	TenderAwarded TenderStatus = "AWARDED"
	TenderClosed  TenderStatus = "CLOSED"
)

// Tender is a procurement opportunity.
type Tender struct {
	ID          string
	Title       locale.Text
	Description locale.Text
	Issuer      locale.Text
	Category    string
	Sector      string
	Budget      decimal.Decimal
	Currency    string
	PublishedAt time.Time
	Deadline    time.Time
	Status      TenderStatus
}

// Catalog is the complete hub content.
type Catalog struct {
	Deals     []Deal
	Datasets  []Dataset
	Reports   []Report
	Companies []Company
	Suppliers []Supplier
	Tenders   []Tender
}

// Counts returns the number of records per hub.
func (c Catalog) Counts() map[Kind]int {
	return map[Kind]int{
		KindDeals:     len(c.Deals),
		KindDatasets:  len(c.Datasets),
		KindReports:   len(c.Reports),
		KindCompanies: len(c.Companies),
		KindSuppliers: len(c.Suppliers),
		KindTenders:   len(c.Tenders),
	}
}
