package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/events"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

// CreateHandler proxies entity creation to the upstream API. Every
// create is followed by a list re-fetch on the caller's next List call;
// nothing is inserted locally.
type CreateHandler struct {
	api       *upstream.Client
	publisher *events.Publisher
	logger    logger.Logger
}

func NewCreateHandler(api *upstream.Client, publisher *events.Publisher, log logger.Logger) *CreateHandler {
	return &CreateHandler{api: api, publisher: publisher, logger: log}
}

func (h *CreateHandler) created(c *gin.Context, kind console.Kind, id int, body any) {
	h.publisher.PublishAsync(events.ContentEvent{
		EventType: events.EventCreated,
		Kind:      string(kind),
		EntityID:  id,
		Actor:     currentSession(c).Username,
	})
	c.JSON(http.StatusCreated, body)
}

// CreateRegion handles POST /admin/regions.
func (h *CreateHandler) CreateRegion(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	region, err := h.api.CreateRegion(c.Request.Context(), body.Name)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to create region", err)
		return
	}
	h.created(c, console.KindRegions, region.ID, region)
}

// CreateCity handles POST /admin/cities.
func (h *CreateHandler) CreateCity(c *gin.Context) {
	var body struct {
		Name     string `json:"name"`
		RegionID int    `json:"region_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" || body.RegionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and region_id are required"})
		return
	}

	city, err := h.api.CreateCity(c.Request.Context(), body.Name, body.RegionID)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to create city", err)
		return
	}
	h.created(c, console.KindCities, city.ID, city)
}

// CreateUser handles POST /admin/users.
func (h *CreateHandler) CreateUser(c *gin.Context) {
	var body models.NewUser
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	user, err := h.api.CreateUser(c.Request.Context(), &body)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to create user", err)
		return
	}
	h.created(c, console.KindUsers, user.ID, user)
}

// CreateAd handles POST /admin/ads (multipart: title, link, priority,
// active, single image field).
func (h *CreateHandler) CreateAd(c *gin.Context) {
	sub, err := bindAdSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad, err := h.api.CreateAd(c.Request.Context(), sub)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to create advertisement", err)
		return
	}
	h.created(c, console.KindAds, ad.ID, ad)
}

// UpdateAd handles PUT /admin/ads/:id.
func (h *CreateHandler) UpdateAd(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid advertisement id"})
		return
	}

	sub, err := bindAdSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad, err := h.api.UpdateAd(c.Request.Context(), id, sub)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to update advertisement", err)
		return
	}

	h.publisher.PublishAsync(events.ContentEvent{
		EventType: events.EventUpdated,
		Kind:      string(console.KindAds),
		EntityID:  ad.ID,
		Actor:     currentSession(c).Username,
	})
	c.JSON(http.StatusOK, ad)
}

// CreatePartner handles POST /admin/partners (multipart: company_name,
// description, link, single image field).
func (h *CreateHandler) CreatePartner(c *gin.Context) {
	companyName := c.PostForm("company_name")
	link := c.PostForm("link")
	if companyName == "" || link == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_name and link are required"})
		return
	}

	sub := &upstream.PartnerSubmission{
		CompanyName: companyName,
		Description: c.PostForm("description"),
		Link:        link,
	}

	image, err := singleFile(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub.Image = image

	partner, err := h.api.CreatePartner(c.Request.Context(), sub)
	if err != nil {
		respondUpstreamError(c, h.logger, "Failed to create partner", err)
		return
	}
	h.created(c, console.KindPartners, partner.ID, partner)
}

func bindAdSubmission(c *gin.Context) (*upstream.AdSubmission, error) {
	title := c.PostForm("title")
	link := c.PostForm("link")
	if title == "" || link == "" {
		return nil, errBadParam("title/link")
	}

	priority := 0
	if raw := c.PostForm("priority"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errBadParam("priority")
		}
		priority = parsed
	}

	sub := &upstream.AdSubmission{
		Title:    title,
		Link:     link,
		Priority: priority,
		Active:   c.DefaultPostForm("active", "1") == "1",
	}

	image, err := singleFile(c, "image")
	if err != nil {
		return nil, err
	}
	sub.Image = image
	return sub, nil
}

// singleFile reads an optional single multipart file field.
func singleFile(c *gin.Context, field string) (*upstream.FilePart, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errBadParam(field)
	}
	return readFilePart(header)
}

func readFilePart(header *multipart.FileHeader) (*upstream.FilePart, error) {
	file, err := header.Open()
	if err != nil {
		return nil, errBadParam(header.Filename)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, errBadParam(header.Filename)
	}
	return &upstream.FilePart{Filename: header.Filename, Content: content}, nil
}
