// Package geoindex provides the region/city lookup structure used by
// the article filter. An Index is immutable once built; callers rebuild
// it whenever either source collection is refreshed and must not query
// a stale index after a refresh completes.
package geoindex

import (
	"strings"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// Index maps regions to their cities and cities back to their owning
// region. City order follows the source collection order.
type Index struct {
	regionsByID    map[int]models.Region
	citiesByID     map[int]models.City
	citiesByRegion map[int][]models.City
	regions        []models.Region
	cities         []models.City
}

// Build constructs an Index from fetched region and city collections.
// Cities whose region reference does not resolve are kept (they are
// still selectable by city) but have no owning region.
func Build(regions []models.Region, cities []models.City) *Index {
	idx := &Index{
		regionsByID:    make(map[int]models.Region, len(regions)),
		citiesByID:     make(map[int]models.City, len(cities)),
		citiesByRegion: make(map[int][]models.City),
		regions:        regions,
		cities:         cities,
	}

	for _, r := range regions {
		idx.regionsByID[r.ID] = r
	}
	for _, c := range cities {
		idx.citiesByID[c.ID] = c
		if _, ok := idx.regionsByID[c.RegionID]; ok {
			idx.citiesByRegion[c.RegionID] = append(idx.citiesByRegion[c.RegionID], c)
		}
	}

	return idx
}

// Regions returns the region collection in source order.
func (i *Index) Regions() []models.Region {
	return i.regions
}

// CitiesOf returns the cities belonging to regionID, in source order.
func (i *Index) CitiesOf(regionID int) []models.City {
	return i.citiesByRegion[regionID]
}

// Region returns the region with the given id.
func (i *Index) Region(id int) (models.Region, bool) {
	r, ok := i.regionsByID[id]
	return r, ok
}

// City returns the city with the given id.
func (i *Index) City(id int) (models.City, bool) {
	c, ok := i.citiesByID[id]
	return c, ok
}

// RegionOfCityName resolves a denormalized city name to its owning
// region, case-insensitively. City names are not guaranteed unique
// across regions; the first match in source order wins.
func (i *Index) RegionOfCityName(name string) (models.Region, bool) {
	if name == "" {
		return models.Region{}, false
	}
	for _, c := range i.cities {
		if strings.EqualFold(c.Name, name) {
			region, ok := i.regionsByID[c.RegionID]
			return region, ok
		}
	}
	return models.Region{}, false
}

// RegionOf returns the owning region of cityID. The second return is
// false when the city is unknown or its region reference does not
// resolve within the loaded region set.
func (i *Index) RegionOf(cityID int) (models.Region, bool) {
	city, ok := i.citiesByID[cityID]
	if !ok {
		return models.Region{}, false
	}
	region, ok := i.regionsByID[city.RegionID]
	return region, ok
}
