package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// ListRegions fetches every region.
func (c *Client) ListRegions(ctx context.Context) ([]models.Region, error) {
	return fetchCollection[models.Region](ctx, c, "/regions")
}

// CreateRegion creates a region and returns the server copy.
func (c *Client) CreateRegion(ctx context.Context, name string) (*models.Region, error) {
	var region models.Region
	payload := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/regions", payload, &region); err != nil {
		return nil, err
	}
	return &region, nil
}

// DeleteRegion removes a region.
func (c *Client) DeleteRegion(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/regions/%d", id), nil, nil)
}

// ListCities fetches cities, optionally scoped to a region. A regionID
// of 0 fetches all cities.
func (c *Client) ListCities(ctx context.Context, regionID int) ([]models.City, error) {
	path := "/cities"
	if regionID > 0 {
		path = fmt.Sprintf("/cities?region_id=%d", regionID)
	}
	return fetchCollection[models.City](ctx, c, path)
}

// CreateCity creates a city under a region and returns the server copy.
func (c *Client) CreateCity(ctx context.Context, name string, regionID int) (*models.City, error) {
	var city models.City
	payload := map[string]any{"name": name, "region_id": regionID}
	if err := c.doJSON(ctx, http.MethodPost, "/cities", payload, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

// DeleteCity removes a city.
func (c *Client) DeleteCity(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cities/%d", id), nil, nil)
}
