// Package dto holds the JSON request and response bodies of the portal API.
// Every response carries "success"; localized records expose the resolved
// text next to both raw variants.
package dto

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Localized is a bilingual text resolved for the requested locale.
type Localized struct {
	Value string `json:"value"`
	En    string `json:"en"`
	Ar    string `json:"ar"`
}

// LocaleInfo echoes the locale a response was rendered in.
type LocaleInfo struct {
	Locale    string `json:"locale"`
	Direction string `json:"direction"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	AI      bool   `json:"ai"`
}
