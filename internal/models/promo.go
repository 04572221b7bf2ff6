package models

// Advertisement is a single-image promo slot. Priority ordering is
// applied by the upstream API, not re-sorted here. Active is a display
// attribute only.
type Advertisement struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url,omitempty"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

// Partner is a single-image partner listing.
type Partner struct {
	ID          int    `json:"id"`
	CompanyName string `json:"company_name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
	ImageURL    string `json:"image_url,omitempty"`
}
