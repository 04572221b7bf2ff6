package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/importer"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/metadata"
)

// ToolsHandler serves the admin helper endpoints: link metadata
// extraction for ad/partner form prefill and bulk geo import.
type ToolsHandler struct {
	extractor *metadata.Extractor
	importer  *importer.Importer
	logger    logger.Logger
}

func NewToolsHandler(extractor *metadata.Extractor, imp *importer.Importer, log logger.Logger) *ToolsHandler {
	return &ToolsHandler{extractor: extractor, importer: imp, logger: log}
}

// LinkPreview handles GET /admin/link-preview?url=.
func (h *ToolsHandler) LinkPreview(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	preview, err := h.extractor.Extract(c.Request.Context(), rawURL)
	if err != nil {
		h.logger.Debug("Link preview failed",
			logger.String("url", rawURL),
			logger.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch link metadata"})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// GeoImport handles POST /admin/geo/import (multipart field "file",
// an xlsx workbook with region|city rows).
func (h *ToolsHandler) GeoImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable workbook"})
		return
	}
	defer file.Close()

	rows, parseErrors, err := importer.ParseWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workbook: " + err.Error()})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), rows)
	if err != nil {
		respondUpstreamError(c, h.logger, "Geo import failed", err)
		return
	}
	result.Errors = append(parseErrors, result.Errors...)

	c.JSON(http.StatusOK, result)
}
