package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gazetadovale/newsdesk/internal/console"
	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

// sessionContextKey is the gin context key the auth middleware stores
// the resolved session under.
const sessionContextKey = "newsdesk.session"

// AuthHandler manages admin sessions backed by upstream logins.
type AuthHandler struct {
	api      *upstream.Client
	sessions *console.SessionManager
	logger   logger.Logger
}

func NewAuthHandler(api *upstream.Client, sessions *console.SessionManager, log logger.Logger) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, logger: log}
}

// Login handles POST /api/v1/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.api.Login(c.Request.Context(), creds)
	if err != nil {
		if errors.Is(err, upstream.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		respondUpstreamError(c, h.logger, "Login failed", err)
		return
	}

	session := h.sessions.Init(creds.Email, token)

	h.logger.Info("Admin logged in",
		logger.String("username", session.Username),
	)

	c.JSON(http.StatusOK, gin.H{
		"token":    session.Token,
		"username": session.Username,
	})
}

// Logout handles POST /api/v1/logout. Clearing an unknown token is not
// an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.sessions.Clear(token)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Middleware gates admin routes behind a valid session token.
func (h *AuthHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		session, err := h.sessions.Get(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}
	return ""
}

// currentSession returns the session stored by the auth middleware.
func currentSession(c *gin.Context) *console.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := value.(*console.Session)
	return session
}
