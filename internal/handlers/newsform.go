package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/attachments"
	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/events"
	"github.com/gazetadovale/newsdesk/internal/logger"
)

// NewsFormHandler exposes the article create/edit flow. All endpoints
// operate on the calling session's form.
type NewsFormHandler struct {
	publisher *events.Publisher
	logger    logger.Logger
}

func NewNewsFormHandler(publisher *events.Publisher, log logger.Logger) *NewsFormHandler {
	return &NewsFormHandler{publisher: publisher, logger: log}
}

// OpenCreate handles POST /admin/news/form/open: a blank create form.
// Any in-progress form state is discarded.
func (h *NewsFormHandler) OpenCreate(c *gin.Context) {
	form := currentSession(c).Console().Form
	form.Cancel()
	c.JSON(http.StatusOK, form.State())
}

// OpenEdit handles POST /admin/news/form/open/:id. The form is seeded
// from a fresh upstream fetch, never from a local cache.
func (h *NewsFormHandler) OpenEdit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	form := currentSession(c).Console().Form
	if err := form.OpenEdit(c.Request.Context(), id); err != nil {
		respondUpstreamError(c, h.logger, "Failed to open article for editing", err)
		return
	}

	c.JSON(http.StatusOK, form.State())
}

// StageImages handles POST /admin/news/form/images (multipart field
// "images", repeated). The selection replaces any previous staging;
// files beyond the attachment limit are dropped and reported.
func (h *NewsFormHandler) StageImages(c *gin.Context) {
	mpForm, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart body"})
		return
	}

	var staged []attachments.StagedFile
	for _, header := range mpForm.File["images"] {
		file, openErr := header.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + header.Filename})
			return
		}
		content, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file " + header.Filename})
			return
		}
		staged = append(staged, attachments.StagedFile{Filename: header.Filename, Content: content})
	}

	form := currentSession(c).Console().Form
	previews, dropped := form.StageImages(staged)

	response := gin.H{"previews": previews, "dropped": dropped}
	if dropped > 0 {
		response["warning"] = "attachment limit is " + strconv.Itoa(attachments.MaxImages) + " images"
		h.logger.Debug("Staged selection truncated",
			logger.Int("dropped", dropped),
		)
	}
	c.JSON(http.StatusOK, response)
}

// Preview handles GET /admin/news/form/previews/:token, serving the
// staged bytes behind a preview token.
func (h *NewsFormHandler) Preview(c *gin.Context) {
	form := currentSession(c).Console().Form
	content, ok := form.Preview(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "preview expired"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(content), content)
}

// RemoveExistingImage handles DELETE /admin/news/form/images/:index.
func (h *NewsFormHandler) RemoveExistingImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image index"})
		return
	}

	form := currentSession(c).Console().Form
	if err := form.RemoveExistingImage(index); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no existing image at that position"})
		return
	}
	c.JSON(http.StatusOK, form.State())
}

// Submit handles POST /admin/news/form/submit. The body carries the
// non-attachment fields; staged images were uploaded beforehand. On
// failure the form keeps all state, staged files included, so the user
// retries without re-selecting anything.
func (h *NewsFormHandler) Submit(c *gin.Context) {
	var fields console.FormFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := currentSession(c)
	form := session.Console().Form
	mode := form.State().Mode
	form.SetFields(fields)

	article, err := form.Submit(c.Request.Context())
	if err != nil {
		var validation *console.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"fields": validation.Fields,
			})
			return
		}
		respondUpstreamError(c, h.logger, "Failed to save article", err)
		return
	}

	eventType := events.EventCreated
	if mode == console.ModeEdit {
		eventType = events.EventUpdated
	}
	h.publisher.PublishAsync(events.ContentEvent{
		EventType: eventType,
		Kind:      string(console.KindNews),
		EntityID:  article.ID,
		Actor:     session.Username,
	})

	// The list must reflect server-assigned fields, so re-fetch rather
	// than inserting locally.
	if err := session.Console().RefreshNews(c.Request.Context()); err != nil {
		h.logger.Warn("List refresh after save failed", logger.Error(err))
	}

	h.logger.Info("Article saved",
		logger.Int("article_id", article.ID),
		logger.String("username", session.Username),
	)

	c.JSON(http.StatusOK, article)
}

// Cancel handles POST /admin/news/form/cancel, discarding form state
// and releasing previews.
func (h *NewsFormHandler) Cancel(c *gin.Context) {
	form := currentSession(c).Console().Form
	form.Cancel()
	c.JSON(http.StatusOK, form.State())
}

// FormState handles GET /admin/news/form.
func (h *NewsFormHandler) FormState(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Console().Form.State())
}
