package feed

import (
	"sort"
	"strings"

	"github.com/gazetadovale/newsdesk/internal/geoindex"
	"github.com/gazetadovale/newsdesk/internal/models"
)

const (
	// FeaturedCount is the size of the lead partition.
	FeaturedCount = 3
	// RecentCount is the size of the sidebar rail.
	RecentCount = 5
)

// Result is the filtered, sorted, partitioned feed.
type Result struct {
	Featured  []models.Article `json:"featured"`
	Remainder []models.Article `json:"remainder"`
	Recent    []models.Article `json:"recent"`
	Total     int              `json:"count"`
}

// Apply runs the three filter predicates conjunctively, sorts the
// survivors by creation time descending, and partitions them. It never
// fails: unresolvable location references degrade to exclusion (or to a
// no-op filter when the selection itself cannot be resolved), and a nil
// index disables location filtering entirely.
func Apply(articles []models.Article, c Criteria, idx *geoindex.Index) Result {
	filtered := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if !matchesQuery(&a, c.Query) {
			continue
		}
		if !matchesLocation(&a, c, idx) {
			continue
		}
		if !matchesDates(&a, c) {
			continue
		}
		filtered = append(filtered, a)
	}

	// Most recent first, regardless of input order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	result := Result{Total: len(filtered)}
	split := min(FeaturedCount, len(filtered))
	result.Featured = filtered[:split]
	result.Remainder = filtered[split:]
	result.Recent = filtered[:min(RecentCount, len(filtered))]
	return result
}

// matchesQuery matches the free-text term against title or category,
// case-insensitive. An empty term matches everything.
func matchesQuery(a *models.Article, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(string(a.Category)), q)
}

// matchesLocation applies the city filter when a city is selected, else
// the region filter when a region is selected. Comparison is by
// denormalized name text, the upstream API's response contract. A
// selection that no longer resolves in the index degrades to keep-all.
func matchesLocation(a *models.Article, c Criteria, idx *geoindex.Index) bool {
	if idx == nil {
		return true
	}

	if c.CityID != 0 {
		city, ok := idx.City(c.CityID)
		if !ok {
			return true
		}
		return strings.EqualFold(a.City, city.Name)
	}

	if c.RegionID != 0 {
		region, ok := idx.Region(c.RegionID)
		if !ok {
			return true
		}
		if strings.EqualFold(a.Region, region.Name) {
			return true
		}
		// Articles often carry only the city name; resolve it to its
		// owning region through the index.
		owning, ok := idx.RegionOfCityName(a.City)
		return ok && owning.ID == region.ID
	}

	return true
}

// matchesDates applies the inclusive, independently optional creation
// date bounds.
func matchesDates(a *models.Article, c Criteria) bool {
	if !c.From.IsZero() && a.CreatedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && a.CreatedAt.After(c.To) {
		return false
	}
	return true
}
