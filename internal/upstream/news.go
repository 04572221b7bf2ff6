package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// ListNews fetches every article.
func (c *Client) ListNews(ctx context.Context) ([]models.Article, error) {
	return fetchCollection[models.Article](ctx, c, "/news")
}

// GetNews fetches a single article by id. Editing always starts from
// this call so the form is seeded with the current server copy.
func (c *Client) GetNews(ctx context.Context, id int) (*models.Article, error) {
	var article models.Article
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/news/%d", id), nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateNews submits a new article as multipart form data.
func (c *Client) CreateNews(ctx context.Context, sub *NewsSubmission) (*models.Article, error) {
	buf, contentType, err := sub.encode()
	if err != nil {
		return nil, err
	}

	var article models.Article
	if err := c.doMultipart(ctx, http.MethodPost, "/news", buf, contentType, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateNews replaces an article, retaining the listed existing images
// and storing the newly staged ones.
func (c *Client) UpdateNews(ctx context.Context, id int, sub *NewsSubmission) (*models.Article, error) {
	buf, contentType, err := sub.encode()
	if err != nil {
		return nil, err
	}

	var article models.Article
	if err := c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/news/%d", id), buf, contentType, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// DeleteNews removes an article.
func (c *Client) DeleteNews(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/news/%d", id), nil, nil)
}
