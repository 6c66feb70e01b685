package domain

import "strings"

// ServiceOffering is one bookable entry in the public services catalog,
// as returned by the upstream /home/all-services endpoint.
type ServiceOffering struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
}

// FilterOfferings returns the offerings matching a free-text search (title
// or description, case-insensitive) and an optional category.
func FilterOfferings(all []ServiceOffering, search, category string) []ServiceOffering {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]ServiceOffering, 0, len(all))
	for _, s := range all {
		if category != "" && s.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Title), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FallbackCatalog is served when the upstream catalog endpoint is
// unreachable, so the marketing page never renders empty.
var FallbackCatalog = []ServiceOffering{
	{ID: 1, Title: "Home Cleaning", Description: "Professional cleaning service for your entire home. Includes dusting, vacuuming, mopping, and sanitizing.", Price: 90, Category: "cleaning"},
	{ID: 2, Title: "Plumbing Repair", Description: "Expert plumbing solutions for leaks, clogs, installations, and general plumbing maintenance.", Price: 75, Category: "plumbing"},
	{ID: 3, Title: "Electrical Services", Description: "Professional electrical work including installations, repairs, and safety inspections.", Price: 95, Category: "electrical"},
	{ID: 4, Title: "Home Painting", Description: "Interior and exterior painting services with professional techniques and quality materials.", Price: 120, Category: "repair"},
	{ID: 5, Title: "Appliance Repair", Description: "Expert repairs for all major household appliances, including refrigerators, washers, and dryers.", Price: 85, Category: "repair"},
	{ID: 6, Title: "Landscaping & Gardening", Description: "Professional garden design, maintenance, and lawn care services to beautify your outdoor space.", Price: 110, Category: "garden"},
}
