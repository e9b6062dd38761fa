package seed

import (
	"fmt"
	"time"

	"github.com/chamberhub/bizportal/domain/catalog"
	"github.com/chamberhub/bizportal/domain/locale"
	"github.com/shopspring/decimal"
)

type dealDoc struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	TitleAr       string    `yaml:"title_ar"`
	Description   string    `yaml:"description"`
	DescriptionAr string    `yaml:"description_ar"`
	Partner       string    `yaml:"partner"`
	PartnerAr     string    `yaml:"partner_ar"`
	Category      string    `yaml:"category"`
	Sector        string    `yaml:"sector"`
	DiscountPct   int       `yaml:"discount_pct"`
	MemberPrice   string    `yaml:"member_price"`
	Currency      string    `yaml:"currency"`
	ValidUntil    time.Time `yaml:"valid_until"`
	URL           string    `yaml:"url"`
	Featured      bool      `yaml:"featured"`
	GoldenVendor  bool      `yaml:"golden_vendor"`
}

type pointDoc struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type datasetDoc struct {
	ID            string     `yaml:"id"`
	Title         string     `yaml:"title"`
	TitleAr       string     `yaml:"title_ar"`
	Description   string     `yaml:"description"`
	DescriptionAr string     `yaml:"description_ar"`
	Category      string     `yaml:"category"`
	Sector        string     `yaml:"sector"`
	Source        string     `yaml:"source"`
	Unit          string     `yaml:"unit"`
	Frequency     string     `yaml:"frequency"`
	UpdatedAt     time.Time  `yaml:"updated_at"`
	Featured      bool       `yaml:"featured"`
	Series        []pointDoc `yaml:"series"`
}

type reportDoc struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	TitleAr     string    `yaml:"title_ar"`
	Summary     string    `yaml:"summary"`
	SummaryAr   string    `yaml:"summary_ar"`
	Category    string    `yaml:"category"`
	Sector      string    `yaml:"sector"`
	Author      string    `yaml:"author"`
	PublishedAt time.Time `yaml:"published_at"`
	Pages       int       `yaml:"pages"`
	URL         string    `yaml:"url"`
	Featured    bool      `yaml:"featured"`
}

type companyDoc struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	NameAr        string `yaml:"name_ar"`
	Description   string `yaml:"description"`
	DescriptionAr string `yaml:"description_ar"`
	Category      string `yaml:"category"`
	Sector        string `yaml:"sector"`
	City          string `yaml:"city"`
	CityAr        string `yaml:"city_ar"`
	Website       string `yaml:"website"`
	Employees     int    `yaml:"employees"`
	Founded       int    `yaml:"founded"`
	Verified      bool   `yaml:"verified"`
	GoldenVendor  bool   `yaml:"golden_vendor"`
}

type supplierDoc struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	NameAr         string   `yaml:"name_ar"`
	Description    string   `yaml:"description"`
	DescriptionAr  string   `yaml:"description_ar"`
	Category       string   `yaml:"category"`
	Sector         string   `yaml:"sector"`
	City           string   `yaml:"city"`
	CityAr         string   `yaml:"city_ar"`
	Rating         float64  `yaml:"rating"`
	Certifications []string `yaml:"certifications"`
	ContactEmail   string   `yaml:"contact_email"`
	GoldenVendor   bool     `yaml:"golden_vendor"`
}

type tenderDoc struct {
	ID            string    `yaml:"id"`
	Title         string    `yaml:"title"`
	TitleAr       string    `yaml:"title_ar"`
	Description   string    `yaml:"description"`
	DescriptionAr string    `yaml:"description_ar"`
	Issuer        string    `yaml:"issuer"`
	IssuerAr      string    `yaml:"issuer_ar"`
	Category      string    `yaml:"category"`
	Sector        string    `yaml:"sector"`
	Budget        string    `yaml:"budget"`
	Currency      string    `yaml:"currency"`
	PublishedAt   time.Time `yaml:"published_at"`
	Deadline      time.Time `yaml:"deadline"`
	Status        string    `yaml:"status"`
}

type catalogDoc struct {
	Deals     []dealDoc     `yaml:"deals"`
	Datasets  []datasetDoc  `yaml:"datasets"`
	Reports   []reportDoc   `yaml:"reports"`
	Companies []companyDoc  `yaml:"companies"`
	Suppliers []supplierDoc `yaml:"suppliers"`
	Tenders   []tenderDoc   `yaml:"tenders"`
}

func amount(id, field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %s %q: %w", id, field, s, err)
	}
	return d, nil
}

// Catalog returns the member hub content in curated order.
func Catalog() (catalog.Catalog, error) {
	var doc catalogDoc
	if err := decode("catalog.yaml", &doc); err != nil {
		return catalog.Catalog{}, err
	}

	var out catalog.Catalog
	for _, d := range doc.Deals {
		price, err := amount(d.ID, "member_price", d.MemberPrice)
		if err != nil {
			return catalog.Catalog{}, err
		}
		out.Deals = append(out.Deals, catalog.Deal{
			ID:           d.ID,
			Title:        locale.NewText(d.Title, d.TitleAr),
			Description:  locale.NewText(d.Description, d.DescriptionAr),
			Partner:      locale.NewText(d.Partner, d.PartnerAr),
			Category:     d.Category,
			Sector:       d.Sector,
			DiscountPct:  d.DiscountPct,
			MemberPrice:  price,
			Currency:     d.Currency,
			ValidUntil:   d.ValidUntil.UTC(),
			URL:          d.URL,
			Featured:     d.Featured,
			GoldenVendor: d.GoldenVendor,
		})
	}

	for _, d := range doc.Datasets {
		series := make([]catalog.Point, 0, len(d.Series))
		for _, p := range d.Series {
			v, err := amount(d.ID, "series "+p.Label, p.Value)
			if err != nil {
				return catalog.Catalog{}, err
			}
			series = append(series, catalog.Point{Label: p.Label, Value: v})
		}
		out.Datasets = append(out.Datasets, catalog.Dataset{
			ID:          d.ID,
			Title:       locale.NewText(d.Title, d.TitleAr),
			Description: locale.NewText(d.Description, d.DescriptionAr),
			Category:    d.Category,
			Sector:      d.Sector,
			Source:      d.Source,
			Unit:        d.Unit,
			Frequency:   d.Frequency,
			UpdatedAt:   d.UpdatedAt.UTC(),
			Series:      series,
			Featured:    d.Featured,
		})
	}

	for _, r := range doc.Reports {
		out.Reports = append(out.Reports, catalog.Report{
			ID:          r.ID,
			Title:       locale.NewText(r.Title, r.TitleAr),
			Summary:     locale.NewText(r.Summary, r.SummaryAr),
			Category:    r.Category,
			Sector:      r.Sector,
			Author:      r.Author,
			PublishedAt: r.PublishedAt.UTC(),
			Pages:       r.Pages,
			URL:         r.URL,
			Featured:    r.Featured,
		})
	}

	for _, c := range doc.Companies {
		out.Companies = append(out.Companies, catalog.Company{
			ID:           c.ID,
			Name:         locale.NewText(c.Name, c.NameAr),
			Description:  locale.NewText(c.Description, c.DescriptionAr),
			Category:     c.Category,
			Sector:       c.Sector,
			City:         locale.NewText(c.City, c.CityAr),
			Website:      c.Website,
			Employees:    c.Employees,
			Founded:      c.Founded,
			Verified:     c.Verified,
			GoldenVendor: c.GoldenVendor,
		})
	}

	for _, s := range doc.Suppliers {
		out.Suppliers = append(out.Suppliers, catalog.Supplier{
			ID:             s.ID,
			Name:           locale.NewText(s.Name, s.NameAr),
			Description:    locale.NewText(s.Description, s.DescriptionAr),
			Category:       s.Category,
			Sector:         s.Sector,
			City:           locale.NewText(s.City, s.CityAr),
			Rating:         s.Rating,
			Certifications: s.Certifications,
			ContactEmail:   s.ContactEmail,
			GoldenVendor:   s.GoldenVendor,
		})
	}

	for _, t := range doc.Tenders {
		budget, err := amount(t.ID, "budget", t.Budget)
		if err != nil {
			return catalog.Catalog{}, err
		}
		status := catalog.TenderStatus(t.Status)
		switch status {
		case catalog.TenderOpen, catalog.TenderAwarded, catalog.TenderClosed:
		default:
			return catalog.Catalog{}, fmt.Errorf("%s: unknown tender status %q", t.ID, t.Status)
		}
		out.Tenders = append(out.Tenders, catalog.Tender{
			ID:          t.ID,
			Title:       locale.NewText(t.Title, t.TitleAr),
			Description: locale.NewText(t.Description, t.DescriptionAr),
			Issuer:      locale.NewText(t.Issuer, t.IssuerAr),
			Category:    t.Category,
			Sector:      t.Sector,
			Budget:      budget,
			Currency:    t.Currency,
			PublishedAt: t.PublishedAt.UTC(),
			Deadline:    t.Deadline.UTC(),
			Status:      status,
		})
	}

	return out, nil
}
