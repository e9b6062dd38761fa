package catalog

import "strings"

func texts(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EntryID implements Entry.
func (d Deal) EntryID() string { return d.ID }

// Facets implements Entry.
func (d Deal) Facets() Facets {
	return Facets{Category: d.Category, Sector: d.Sector, Featured: d.Featured, GoldenVendor: d.GoldenVendor}
}

// SearchFields implements Entry.
func (d Deal) SearchFields() []string {
	return texts(d.Title.En, d.Title.Ar, d.Partner.En, d.Partner.Ar, d.Description.En, d.Description.Ar, d.Category)
}

// SortKeys implements Entry.
func (d Deal) SortKeys() SortKeys {
	return SortKeys{Title: d.Title.En, Date: d.ValidUntil, Amount: d.MemberPrice, Rating: float64(d.DiscountPct)}
}

// EntryID implements Entry.
func (d Dataset) EntryID() string { return d.ID }

// Facets implements Entry.
func (d Dataset) Facets() Facets {
	return Facets{Category: d.Category, Sector: d.Sector, Featured: d.Featured}
}

// SearchFields implements Entry.
func (d Dataset) SearchFields() []string {
	return texts(d.Title.En, d.Title.Ar, d.Description.En, d.Description.Ar, d.Source, d.Category)
}

// SortKeys implements Entry.
func (d Dataset) SortKeys() SortKeys {
	keys := SortKeys{Title: d.Title.En, Date: d.UpdatedAt}
	if p, ok := d.Latest(); ok {
		keys.Amount = p.Value
	}
	return keys
}

// EntryID implements Entry.
func (r Report) EntryID() string { return r.ID }

// Facets implements Entry.
func (r Report) Facets() Facets {
	return Facets{Category: r.Category, Sector: r.Sector, Featured: r.Featured}
}

// SearchFields implements Entry.
func (r Report) SearchFields() []string {
	return texts(r.Title.En, r.Title.Ar, r.Summary.En, r.Summary.Ar, r.Author, r.Category)
}

// SortKeys implements Entry.
func (r Report) SortKeys() SortKeys {
	return SortKeys{Title: r.Title.En, Date: r.PublishedAt}
}

// EntryID implements Entry.
func (c Company) EntryID() string { return c.ID }

// Facets implements Entry.
func (c Company) Facets() Facets {
	return Facets{Category: c.Category, Sector: c.Sector, Featured: c.Verified, GoldenVendor: c.GoldenVendor}
}

// SearchFields implements Entry.
func (c Company) SearchFields() []string {
	return texts(c.Name.En, c.Name.Ar, c.Description.En, c.Description.Ar, c.City.En, c.City.Ar, c.Category)
}

// SortKeys implements Entry.
func (c Company) SortKeys() SortKeys {
	return SortKeys{Title: c.Name.En, Rating: float64(c.Employees)}
}

// EntryID implements Entry.
func (s Supplier) EntryID() string { return s.ID }

// Facets implements Entry.
func (s Supplier) Facets() Facets {
	return Facets{Category: s.Category, Sector: s.Sector, GoldenVendor: s.GoldenVendor}
}

// SearchFields implements Entry.
func (s Supplier) SearchFields() []string {
	fields := texts(s.Name.En, s.Name.Ar, s.Description.En, s.Description.Ar, s.City.En, s.City.Ar, s.Category)
	if len(s.Certifications) > 0 {
		fields = append(fields, strings.Join(s.Certifications, " "))
	}
	return fields
}

// SortKeys implements Entry.
func (s Supplier) SortKeys() SortKeys {
	return SortKeys{Title: s.Name.En, Rating: s.Rating}
}

// EntryID implements Entry.
func (t Tender) EntryID() string { return t.ID }

// Facets implements Entry.
func (t Tender) Facets() Facets {
	return Facets{Category: t.Category, Sector: t.Sector, Open: t.Status == TenderOpen}
}

// SearchFields implements Entry.
func (t Tender) SearchFields() []string {
	return texts(t.Title.En, t.Title.Ar, t.Issuer.En, t.Issuer.Ar, t.Description.En, t.Description.Ar, t.Category)
}

// SortKeys implements Entry.
func (t Tender) SortKeys() SortKeys {
	return SortKeys{Title: t.Title.En, Date: t.Deadline, Amount: t.Budget}
}
