package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// Advertisement endpoints live under /publicidade on the upstream API.
const adsPath = "/publicidade"

// ListAds fetches every advertisement, in API-provided priority order.
func (c *Client) ListAds(ctx context.Context) ([]models.Advertisement, error) {
	return fetchCollection[models.Advertisement](ctx, c, adsPath)
}

// CreateAd submits a new advertisement as multipart form data.
func (c *Client) CreateAd(ctx context.Context, sub *AdSubmission) (*models.Advertisement, error) {
	buf, contentType, err := sub.encode()
	if err != nil {
		return nil, err
	}

	var ad models.Advertisement
	if err := c.doMultipart(ctx, http.MethodPost, adsPath, buf, contentType, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// UpdateAd replaces an advertisement.
func (c *Client) UpdateAd(ctx context.Context, id int, sub *AdSubmission) (*models.Advertisement, error) {
	buf, contentType, err := sub.encode()
	if err != nil {
		return nil, err
	}

	var ad models.Advertisement
	if err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adsPath, id), buf, contentType, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// DeleteAd removes an advertisement.
func (c *Client) DeleteAd(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adsPath, id), nil, nil)
}

// ListPartners fetches every partner.
func (c *Client) ListPartners(ctx context.Context) ([]models.Partner, error) {
	return fetchCollection[models.Partner](ctx, c, "/partners")
}

// CreatePartner submits a new partner as multipart form data.
func (c *Client) CreatePartner(ctx context.Context, sub *PartnerSubmission) (*models.Partner, error) {
	buf, contentType, err := sub.encode()
	if err != nil {
		return nil, err
	}

	var partner models.Partner
	if err := c.doMultipart(ctx, http.MethodPost, "/partners", buf, contentType, &partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

// DeletePartner removes a partner.
func (c *Client) DeletePartner(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/partners/%d", id), nil, nil)
}
