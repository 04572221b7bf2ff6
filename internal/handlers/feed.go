// Package handlers contains the gin handlers for the public feed and
// the admin console.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/feed"
	"github.com/gazetadovale/newsdesk/internal/geoindex"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

const dateLayout = "2006-01-02"

// FeedHandler serves the reader-facing aggregation endpoints.
type FeedHandler struct {
	api    *upstream.Client
	logger logger.Logger
}

func NewFeedHandler(api *upstream.Client, log logger.Logger) *FeedHandler {
	return &FeedHandler{api: api, logger: log}
}

// Feed handles GET /api/v1/feed. The three source collections are
// fetched concurrently; a failed reference fetch degrades that filter
// to a no-op instead of failing the request.
func (h *FeedHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()

	articles, idx := h.loadSources(ctx)

	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := feed.Apply(articles, criteria, idx)
	h.resolveImages(result.Featured)
	h.resolveImages(result.Remainder)
	h.resolveImages(result.Recent)

	c.JSON(http.StatusOK, result)
}

// loadSources fetches articles, regions and cities concurrently. Each
// failure degrades to an empty collection.
func (h *FeedHandler) loadSources(ctx context.Context) ([]models.Article, *geoindex.Index) {
	var (
		wg       sync.WaitGroup
		articles []models.Article
		regions  []models.Region
		cities   []models.City
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if articles, err = h.api.ListNews(ctx); err != nil {
			h.logger.Warn("Failed to fetch articles, serving empty feed", logger.Error(err))
			articles = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if regions, err = h.api.ListRegions(ctx); err != nil {
			h.logger.Warn("Failed to fetch regions, region filter disabled", logger.Error(err))
			regions = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if cities, err = h.api.ListCities(ctx, 0); err != nil {
			h.logger.Warn("Failed to fetch cities, city filter disabled", logger.Error(err))
			cities = nil
		}
	}()
	wg.Wait()

	return articles, geoindex.Build(regions, cities)
}

// parseCriteria reads the filter query parameters. Selecting a region
// then a city goes through Criteria so the region-clears-city rule
// holds even for hand-built URLs.
func parseCriteria(c *gin.Context) (feed.Criteria, error) {
	var criteria feed.Criteria
	criteria.Query = c.Query("q")

	if raw := c.Query("region_id"); raw != "" {
		regionID, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, errBadParam("region_id")
		}
		criteria.SelectRegion(regionID)
	}
	if raw := c.Query("city_id"); raw != "" {
		cityID, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, errBadParam("city_id")
		}
		criteria.SelectCity(cityID)
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return criteria, errBadParam("from")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return criteria, errBadParam("to")
		}
		// Date-only upper bound covers the whole day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	criteria.SetDateRange(from, to)

	return criteria, nil
}

// resolveImages rewrites relative image references to full URLs.
func (h *FeedHandler) resolveImages(articles []models.Article) {
	base := h.api.BaseURL()
	for i := range articles {
		for j, ref := range articles[i].Images {
			articles[i].Images[j] = models.ResolveImageURL(base, ref)
		}
	}
}

// Article handles GET /api/v1/news/:id.
func (h *FeedHandler) Article(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := h.api.GetNews(c.Request.Context(), id)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to fetch article", err)
		return
	}

	single := []models.Article{*article}
	h.resolveImages(single)
	c.JSON(http.StatusOK, single[0])
}

// Regions handles GET /api/v1/regions.
func (h *FeedHandler) Regions(c *gin.Context) {
	regions, err := h.api.ListRegions(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to fetch regions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": regions, "count": len(regions)})
}

// Cities handles GET /api/v1/cities with optional region_id scoping.
func (h *FeedHandler) Cities(c *gin.Context) {
	regionID := 0
	if raw := c.Query("region_id"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadParam("region_id").Error()})
			return
		}
		regionID = parsed
	}

	cities, err := h.api.ListCities(c.Request.Context(), regionID)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to fetch cities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities, "count": len(cities)})
}

// Ads handles GET /api/v1/ads, in API-provided priority order.
func (h *FeedHandler) Ads(c *gin.Context) {
	ads, err := h.api.ListAds(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to fetch advertisements", err)
		return
	}
	for i := range ads {
		if ads[i].ImageURL != "" {
			ads[i].ImageURL = models.ResolveImageURL(h.api.BaseURL(), ads[i].ImageURL)
		}
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads, "count": len(ads)})
}

// Partners handles GET /api/v1/partners.
func (h *FeedHandler) Partners(c *gin.Context) {
	partners, err := h.api.ListPartners(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to fetch partners", err)
		return
	}
	for i := range partners {
		if partners[i].ImageURL != "" {
			partners[i].ImageURL = models.ResolveImageURL(h.api.BaseURL(), partners[i].ImageURL)
		}
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners, "count": len(partners)})
}
