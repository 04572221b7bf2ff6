package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/events"
	"github.com/gazetadovale/newsdesk/internal/logger"
)

// AdminHandler serves the generic admin list and two-step delete flow
// shared by every entity kind.
type AdminHandler struct {
	publisher *events.Publisher
	logger    logger.Logger
}

func NewAdminHandler(publisher *events.Publisher, log logger.Logger) *AdminHandler {
	return &AdminHandler{publisher: publisher, logger: log}
}

func parseKind(c *gin.Context) (console.Kind, *console.ListCoordinator, bool) {
	kind := console.Kind(c.Param("kind"))
	flow, ok := currentSession(c).Console().Flow(kind)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown entity kind"})
		return "", nil, false
	}
	return kind, flow, true
}

// List handles GET /admin/:kind. It re-fetches the collection through
// the sequence-guarded store and returns the held items together with
// any delete pending confirmation.
func (h *AdminHandler) List(c *gin.Context) {
	kind, flow, ok := parseKind(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cons := currentSession(c).Console()

	var refreshErr error
	var items any
	switch kind {
	case console.KindNews:
		refreshErr = cons.RefreshNews(ctx)
		items = cons.News.Items()
	case console.KindRegions:
		refreshErr = cons.RefreshRegions(ctx)
		items = cons.Regions.Items()
	case console.KindCities:
		refreshErr = cons.RefreshCities(ctx)
		items = cons.Cities.Items()
	case console.KindUsers:
		refreshErr = cons.RefreshUsers(ctx)
		items = cons.Users.Items()
	case console.KindAds:
		refreshErr = cons.RefreshAds(ctx)
		items = cons.Ads.Items()
	case console.KindPartners:
		refreshErr = cons.RefreshPartners(ctx)
		items = cons.Partners.Items()
	}

	if refreshErr != nil {
		// Serve the last applied collection; the view stays usable and
		// re-triable.
		h.logger.Warn("List refresh failed, serving held collection",
			logger.String("kind", string(kind)),
			logger.Error(refreshErr),
		)
	}

	response := gin.H{"items": items}
	if pending, exists := flow.Pending(); exists {
		response["pending_delete"] = pending
	}
	c.JSON(http.StatusOK, response)
}

// RequestDelete handles POST /admin/:kind/:id/delete. It only records
// the candidate; nothing destructive happens until confirmation.
func (h *AdminHandler) RequestDelete(c *gin.Context) {
	_, flow, ok := parseKind(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity id"})
		return
	}

	var body struct {
		Label string `json:"label"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label is required"})
		return
	}

	flow.RequestDelete(id, body.Label)
	pending, _ := flow.Pending()
	c.JSON(http.StatusOK, gin.H{"pending_delete": pending})
}

// CancelDelete handles POST /admin/:kind/delete/cancel. The delete call
// is never fired.
func (h *AdminHandler) CancelDelete(c *gin.Context) {
	_, flow, ok := parseKind(c)
	if !ok {
		return
	}

	flow.Cancel()
	c.JSON(http.StatusOK, gin.H{"status": "idle"})
}

// ConfirmDelete handles POST /admin/:kind/delete/confirm. The list is
// re-fetched whether or not the delete succeeded.
func (h *AdminHandler) ConfirmDelete(c *gin.Context) {
	kind, flow, ok := parseKind(c)
	if !ok {
		return
	}

	pending, exists := flow.Pending()
	if !exists {
		c.JSON(http.StatusConflict, gin.H{"error": "no delete pending confirmation"})
		return
	}

	if err := flow.Confirm(c.Request.Context()); err != nil {
		if errors.Is(err, console.ErrNoPendingDelete) {
			c.JSON(http.StatusConflict, gin.H{"error": "no delete pending confirmation"})
			return
		}
		respondUpstreamError(c, h.logger, "Delete failed", err)
		return
	}

	session := currentSession(c)
	h.publisher.PublishAsync(events.ContentEvent{
		EventType: events.EventDeleted,
		Kind:      string(kind),
		EntityID:  pending.ID,
		Actor:     session.Username,
	})

	h.logger.Info("Entity deleted",
		logger.String("kind", string(kind)),
		logger.Int("entity_id", pending.ID),
		logger.String("username", session.Username),
	)

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": pending.ID})
}
