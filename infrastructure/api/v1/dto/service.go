package dto

// ServiceSchema is a directory entry.
type ServiceSchema struct {
	ID           string    `json:"id"`
	Name         Localized `json:"name"`
	Description  Localized `json:"description"`
	Department   string    `json:"department"`
	Platform     string    `json:"platform"`
	Channel      string    `json:"channel"`
	URL          string    `json:"url,omitempty"`
	Tags         []string  `json:"tags"`
	Featured     bool      `json:"featured"`
	GoldenVendor bool      `json:"goldenVendor"`
	SortOrder    int       `json:"sortOrder"`
}

// ServiceFilters echoes the directory filters applied to a listing.
type ServiceFilters struct {
	Department string `json:"department,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Query      string `json:"q,omitempty"`
	Featured   bool   `json:"featured,omitempty"`
}

// ServiceListResponse is the body of GET /api/services.
type ServiceListResponse struct {
	LocaleInfo

	Success     bool            `json:"success"`
	Filters     ServiceFilters  `json:"filters"`
	Departments []string        `json:"departments"`
	Total       int             `json:"total"`
	Items       []ServiceSchema `json:"items"`
}

// ServiceResponse is the body of GET /api/services/{id}.
type ServiceResponse struct {
	LocaleInfo

	Success bool          `json:"success"`
	Service ServiceSchema `json:"service"`
}
