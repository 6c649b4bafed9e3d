// Package search translates client search requests into engine queries and
// normalizes raw engine responses into the client payload.
package search

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sort modes accepted by the API.
const (
	SortRelevance = "relevance"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortSizeAsc   = "size_asc"
	SortSizeDesc  = "size_desc"
	SortYearAsc   = "year_asc"
	SortYearDesc  = "year_desc"
)

// Filters are the explicit structured filters of a search request.
type Filters struct {
	Industry  []string `json:"industry,omitempty"`
	SizeRange string   `json:"size_range,omitempty"`
	Country   string   `json:"country,omitempty"`
	Locality  string   `json:"locality,omitempty"`
	YearMin   *int     `json:"year_min,omitempty"`
	YearMax   *int     `json:"year_max,omitempty"`
}

// Request is the inbound search contract. Page and Size bounds are enforced
// by Validate before the pipeline runs.
type Request struct {
	Query   string  `json:"query,omitempty"`
	Filters Filters `json:"filters,omitempty"`
	Page    int     `json:"page"`
	Size    int     `json:"size"`
	Sort    string  `json:"sort,omitempty"`
	// Locale drives number formatting in the response (e.g. en-US, de-DE).
	Locale string `json:"locale,omitempty"`
	// CountryScope restricts results to one country (code or name).
	CountryScope string `json:"country_scope,omitempty"`
	// Indices overrides index resolution with explicit index names.
	Indices []string `json:"indices,omitempty"`
}

// Validate enforces the request preconditions of the pipeline.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Required, validation.Min(1)),
		validation.Field(&r.Size, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.Sort, validation.In(
			SortRelevance,
			SortNameAsc, SortNameDesc,
			SortSizeAsc, SortSizeDesc,
			SortYearAsc, SortYearDesc,
		)),
	)
}

// Hit is the normalized projection of one engine document. Pointer fields
// render as null when the document lacks the value.
type Hit struct {
	ID                      *int64  `json:"id"`
	Name                    *string `json:"name"`
	Domain                  *string `json:"domain"`
	Industry                *string `json:"industry"`
	SizeRange               *string `json:"size_range"`
	Locality                *string `json:"locality"`
	Country                 *string `json:"country"`
	YearFounded             *int64  `json:"year_founded"`
	CurrentEmployeeEstimate *int64  `json:"current_employee_estimate"`
	TotalEmployeeEstimate   *int64  `json:"total_employee_estimate"`
	LinkedinURL             *string `json:"linkedin_url"`

	// Locale-formatted renderings, present only when a locale was supplied.
	CurrentEmployeeEstimateFormatted string `json:"current_employee_estimate_formatted,omitempty"`
	TotalEmployeeEstimateFormatted   string `json:"total_employee_estimate_formatted,omitempty"`
}

// FacetValue is one value/count pair of a term facet.
type FacetValue struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Facets are the aggregated breakdowns returned alongside hits. Year is a
// {min,max} pair, or empty when no documents matched.
type Facets struct {
	Industry  []FacetValue       `json:"industry"`
	Country   []FacetValue       `json:"country"`
	SizeRange []FacetValue       `json:"size_range"`
	Year      map[string]float64 `json:"year"`
}

// Meta echoes the localization inputs that were applied.
type Meta struct {
	CountryScope string `json:"country_scope,omitempty"`
	Locale       string `json:"locale,omitempty"`
}

// Response is the outbound envelope returned to clients.
type Response struct {
	Hits   []Hit  `json:"hits"`
	Total  int64  `json:"total"`
	Facets Facets `json:"facets"`
	Meta   Meta   `json:"meta"`
}
