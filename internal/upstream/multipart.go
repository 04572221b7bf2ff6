package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// FilePart is a file field in a multipart submission.
type FilePart struct {
	Filename string
	Content  []byte
}

// NewsSubmission is the outbound payload for article create/update.
// ExistingImages lists the persisted references the API must retain;
// Images carries the newly staged files, in display order after the
// existing ones.
type NewsSubmission struct {
	Title          string
	Content        string
	Category       models.Category
	CityID         int
	ExistingImages []string
	Images         []FilePart
}

// AdSubmission is the outbound payload for advertisement create/update.
type AdSubmission struct {
	Title    string
	Link     string
	Priority int
	Active   bool
	Image    *FilePart
}

// PartnerSubmission is the outbound payload for partner create/update.
type PartnerSubmission struct {
	CompanyName string
	Description string
	Link        string
	Image       *FilePart
}

func (s *NewsSubmission) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"title":    s.Title,
		"content":  s.Content,
		"category": string(s.Category),
		"city_id":  strconv.Itoa(s.CityID),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, img := range s.Images {
		if err := writeFile(w, "images", img); err != nil {
			return nil, "", err
		}
	}
	for _, ref := range s.ExistingImages {
		if err := w.WriteField("existingImages", ref); err != nil {
			return nil, "", fmt.Errorf("write existing image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func (s *AdSubmission) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	active := "0"
	if s.Active {
		active = "1"
	}
	fields := map[string]string{
		"title":    s.Title,
		"link":     s.Link,
		"priority": strconv.Itoa(s.Priority),
		"active":   active,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if s.Image != nil {
		if err := writeFile(w, "image", *s.Image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func (s *PartnerSubmission) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"company_name": s.CompanyName,
		"description":  s.Description,
		"link":         s.Link,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if s.Image != nil {
		if err := writeFile(w, "image", *s.Image); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, part FilePart) error {
	fw, err := w.CreateFormFile(field, part.Filename)
	if err != nil {
		return fmt.Errorf("create form file %s: %w", part.Filename, err)
	}
	if _, err := fw.Write(part.Content); err != nil {
		return fmt.Errorf("write form file %s: %w", part.Filename, err)
	}
	return nil
}

// doMultipart issues a multipart request and decodes the JSON response
// into out (when out is non-nil).
func (c *Client) doMultipart(ctx context.Context, method, path string, buf *bytes.Buffer, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, out)
}
