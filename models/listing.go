package models

// Listing is one marketplace search result for a purchasable stock template.
type Listing struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Author        string  `json:"author"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	PriceCents    int     `json:"price_cents"`
	NumberOfSales int     `json:"number_of_sales"`
	Rating        float64 `json:"rating"`
	ListingURL    string  `json:"listing_url"`
}
