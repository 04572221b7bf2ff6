// Package feed implements the reader-facing aggregation pipeline:
// filter criteria, the article filter engine, and the featured/
// remainder partition used for layout.
package feed

import "time"

// Criteria is the active filter state. The zero value matches every
// article. CityID is only meaningful while RegionID is set; the
// Select* methods keep that invariant.
type Criteria struct {
	Query    string
	RegionID int
	CityID   int
	From     time.Time
	To       time.Time
}

// SelectRegion sets the region filter. Changing or clearing the region
// always clears the city selection; a city is never retained without
// its owning region selected.
func (c *Criteria) SelectRegion(regionID int) {
	c.RegionID = regionID
	c.CityID = 0
}

// SelectCity sets the city filter. It is ignored unless a region is
// currently selected.
func (c *Criteria) SelectCity(cityID int) {
	if c.RegionID == 0 {
		return
	}
	c.CityID = cityID
}

// SetDateRange sets the inclusive creation-date bounds. A zero time
// leaves that bound open.
func (c *Criteria) SetDateRange(from, to time.Time) {
	c.From = from
	c.To = to
}
