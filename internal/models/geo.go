package models

// Region is a top-level geographic grouping.
type Region struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// City belongs to exactly one region. A RegionID that does not resolve
// within the loaded region set makes the city regionless for filtering.
type City struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RegionID int    `json:"region_id"`
}
